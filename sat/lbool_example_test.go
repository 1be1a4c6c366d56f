package sat

import "fmt"

func ExampleLift() {
	fmt.Println(Lift(true))
	fmt.Println(Lift(false))

	// Output:
	// true
	// false
}

func ExampleLBool_Opposite() {
	fmt.Println(True.Opposite())
	fmt.Println(False.Opposite())
	fmt.Println(Unknown.Opposite())

	// Output:
	// false
	// true
	// unknown
}

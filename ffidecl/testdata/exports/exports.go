package exports

import "strings"

// Version is not exported to C.
const Version = "1.0"

//export my_c_function
func my_c_function(a int32, b float64) int32 {
	return a + int32(b)
}

func helper(s string) string {
	return strings.ToUpper(s)
}

//export another_c_function
func another_c_function(x int32) int32 {
	return x * 2
}

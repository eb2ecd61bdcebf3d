package cgoexports

import "C"

//export scale
func scale(x float64, by int32) float64 {
	return x * float64(by)
}

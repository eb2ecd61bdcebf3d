package exports

type counter struct {
	n uint64
}

var total counter

//export bump
func bump(by uint64) {
	total.n += by
}

//export ratio
func ratio(num, den float32) float32 {
	return num / den
}

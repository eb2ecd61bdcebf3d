package cgoexports

//export plain
func plain() uint32 {
	return 7
}

package format

// AlignUp returns n rounded up to the next Alignment boundary.
//
// Example:
//
//	AlignUp(1)  = 16
//	AlignUp(16) = 16
//	AlignUp(17) = 32
func AlignUp(n int) int {
	return (n + AlignmentMask) &^ AlignmentMask
}

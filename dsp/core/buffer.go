package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// CopyInto copies src into dst and returns the number of copied elements.
// It is a no-op when both slices share the same backing start, which is the
// in-place bypass case.
func CopyInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}
	if &dst[0] == &src[0] {
		return n
	}
	copy(dst[:n], src[:n])
	return n
}

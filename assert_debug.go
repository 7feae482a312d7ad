//go:build debug

package ttgo

// debugAssert panics when cond is false. Compiled in only under the
// debug build tag; release builds trust the caller contract instead.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic("ttgo: " + msg)
	}
}

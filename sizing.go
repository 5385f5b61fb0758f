//go:build !hsm_fixedpath

package hsm

// PathSizing selects how much of the traversal path buffer TraverseState may use. Build with the hsm_fixedpath tag to
// use the whole MaxDepth buffer on every call.
const PathSizing = SizeExact

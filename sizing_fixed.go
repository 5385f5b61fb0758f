//go:build hsm_fixedpath

package hsm

// PathSizing selects how much of the traversal path buffer TraverseState may use.
const PathSizing = SizeFixed

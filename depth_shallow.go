//go:build hsm_shallow

package hsm

// MaxDepth is the capacity of the traversal path buffer, and so the number of hierarchy levels a topology may use.
const MaxDepth = 4

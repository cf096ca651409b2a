// Package compare computes per-character correctness against a reference text.
package compare

// CorrectCount counts positions where typed matches reference. Typed runes
// beyond the reference length are ignored; they still count toward the
// accuracy denominator upstream.
func CorrectCount(reference, typed []rune) int {
	n := len(reference)
	if len(typed) < n {
		n = len(typed)
	}
	correct := 0
	for i := 0; i < n; i++ {
		if typed[i] == reference[i] {
			correct++
		}
	}
	return correct
}

// Marks returns per-position correctness for the typed prefix. The slice has
// one entry per typed rune within the reference length.
func Marks(reference, typed []rune) []bool {
	n := len(reference)
	if len(typed) < n {
		n = len(typed)
	}
	marks := make([]bool, n)
	for i := 0; i < n; i++ {
		marks[i] = typed[i] == reference[i]
	}
	return marks
}

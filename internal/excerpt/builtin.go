package excerpt

// Built-in excerpts used when no word list is available or generation
// falls outside the length bounds. Each entry fits [MinChars, MaxChars].
var builtinExcerpts = []string{
	"The quick brown fox jumps over the lazy dog while the patient cat watches from the warm windowsill.",
	"Practice does not make perfect, but steady practice at the edge of your ability makes progress you can measure.",
	"A river cuts through rock not because of its power but because of its persistence, one small grain at a time.",
	"Every keystroke is a small decision made faster than thought, and speed comes from making those decisions quiet.",
	"The lighthouse keeper climbed the spiral stairs each evening, trimmed the wick, and watched the ships pass safely.",
	"Good tools disappear in the hand; you stop thinking about the hammer and start thinking about the house.",
}

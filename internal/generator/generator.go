// Package generator builds typing excerpts from word lists.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Generator produces randomized excerpt text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed for deterministic output.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Excerpt joins random words into a sentence-like excerpt whose length lands
// in [minChars, maxChars]. The first word is capitalized and the excerpt
// ends with a period.
func (g *Generator) Excerpt(words []string, minChars, maxChars int) string {
	if len(words) == 0 || maxChars <= 0 {
		return ""
	}
	var b strings.Builder
	for b.Len() < minChars {
		word := words[g.rnd.Intn(len(words))]
		if word == "" {
			continue
		}
		if b.Len() == 0 {
			word = capitalize(word)
		}
		// +2 leaves room for the trailing period.
		if b.Len() > 0 && b.Len()+1+len(word)+1 > maxChars {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteByte('.')
	return b.String()
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

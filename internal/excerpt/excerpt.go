// Package excerpt supplies the reference text a session is typed against.
package excerpt

import (
	"context"
	"fmt"

	"github.com/verte-zerg/typerun/internal/generator"
)

// Excerpt length bounds. A provider result outside these bounds is treated
// as a provider failure and falls back to a curated excerpt.
const (
	MinChars = 50
	MaxChars = 350
)

// Provider is an opaque excerpt source.
type Provider interface {
	Excerpt(ctx context.Context) (string, error)
}

// Generated builds excerpts from a word list.
type Generated struct {
	gen   *generator.Generator
	words []string
}

// NewGenerated returns a Provider over the given word list.
func NewGenerated(gen *generator.Generator, words []string) *Generated {
	return &Generated{gen: gen, words: words}
}

// Excerpt implements Provider.
func (g *Generated) Excerpt(_ context.Context) (string, error) {
	text := g.gen.Excerpt(g.words, MinChars, MaxChars)
	if text == "" {
		return "", fmt.Errorf("word list produced no excerpt")
	}
	return text, nil
}

// Curated cycles through a fixed set of excerpts.
type Curated struct {
	excerpts []string
	next     int
}

// NewCurated returns a Provider over fixed excerpts. With no arguments it
// uses the built-in set.
func NewCurated(excerpts ...string) *Curated {
	if len(excerpts) == 0 {
		excerpts = builtinExcerpts
	}
	return &Curated{excerpts: excerpts}
}

// Excerpt implements Provider.
func (c *Curated) Excerpt(_ context.Context) (string, error) {
	if len(c.excerpts) == 0 {
		return "", fmt.Errorf("no curated excerpts")
	}
	text := c.excerpts[c.next%len(c.excerpts)]
	c.next++
	return text, nil
}

// Fallback wraps a primary provider with a deterministic curated fallback.
// The fallback kicks in when the primary fails or returns a text outside
// the [MinChars, MaxChars] bounds.
type Fallback struct {
	primary Provider
	curated Provider
}

// NewFallback combines a primary provider with a curated fallback.
func NewFallback(primary, curated Provider) *Fallback {
	return &Fallback{primary: primary, curated: curated}
}

// Excerpt implements Provider. Primary failures are swallowed; the session
// always gets a usable excerpt.
func (f *Fallback) Excerpt(ctx context.Context) (string, error) {
	text, err := f.primary.Excerpt(ctx)
	if err == nil && len(text) >= MinChars && len(text) <= MaxChars {
		return text, nil
	}
	return f.curated.Excerpt(ctx)
}

// Package trackcode mints the public tracking codes handed to candidates,
// formatted GEN-<year>-<NNNN>.
package trackcode

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Prefix is the fixed leading segment of every tracking code.
const Prefix = "GEN"

const (
	suffixMin   = 1000
	suffixRange = 9000 // suffix is in [1000, 9999]
)

var codePattern = regexp.MustCompile(`^GEN-\d{4}-\d{4}$`)

// Generator produces candidate tracking codes. It does not guarantee uniqueness.
type Generator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewGenerator returns a Generator backed by the wall clock and math/rand/v2.
func NewGenerator() *Generator {
	return &Generator{now: time.Now, intn: rand.Intn}
}

// NewGeneratorWith returns a Generator with an injected clock and random source.
func NewGeneratorWith(now func() time.Time, intn func(n int) int) *Generator {
	g := NewGenerator()
	if now != nil {
		g.now = now
	}
	if intn != nil {
		g.intn = intn
	}
	return g
}

// Next returns a fresh code for the current year.
func (g *Generator) Next() string {
	year := g.now().UTC().Year()
	suffix := suffixMin + g.intn(suffixRange)
	return fmt.Sprintf("%s-%d-%04d", Prefix, year, suffix)
}

// Valid reports whether code has the canonical shape.
func Valid(code string) bool {
	return codePattern.MatchString(code)
}

// Normalize trims surrounding whitespace and upper-cases the prefix so "gen-2025-4831" matches.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Package normalize strips text down to an allow-listed set of scripts
// before lexical matching. Anything outside the allow-list (Latin letters,
// punctuation, symbols, emoji) is deleted, not replaced.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
)

// Script names accepted by New. The defaults mirror the ranges the term
// list was built against: Hangul syllables and compatibility jamo, CJK
// unified ideographs plus extension A, and ASCII digits.
const (
	ScriptHangul     = "hangul"
	ScriptHangulJamo = "hangul_jamo"
	ScriptCJK        = "cjk"
	ScriptCJKExtA    = "cjk_ext_a"
	ScriptDigits     = "digits"
)

var scriptRanges = map[string]unicode.Range16{
	ScriptHangul:     {Lo: 0xAC00, Hi: 0xD7A3, Stride: 1},
	ScriptHangulJamo: {Lo: 0x3131, Hi: 0x3163, Stride: 1},
	ScriptCJK:        {Lo: 0x4E00, Hi: 0x9FFF, Stride: 1},
	ScriptCJKExtA:    {Lo: 0x3400, Hi: 0x4DBF, Stride: 1},
	ScriptDigits:     {Lo: '0', Hi: '9', Stride: 1},
}

// DefaultScripts is the allow-list used when no scripts are configured.
var DefaultScripts = []string{ScriptHangul, ScriptHangulJamo, ScriptCJK, ScriptCJKExtA, ScriptDigits}

// Normalizer deletes every rune outside its allowed script ranges.
// Whitespace is always kept. The zero value is not usable; construct with New.
type Normalizer struct {
	allowed *unicode.RangeTable
}

// New builds a Normalizer for the named scripts. An empty list selects
// DefaultScripts. Unknown script names are an error.
func New(scripts []string) (*Normalizer, error) {
	if len(scripts) == 0 {
		scripts = DefaultScripts
	}
	table := &unicode.RangeTable{}
	for _, name := range scripts {
		r, ok := scriptRanges[name]
		if !ok {
			return nil, fmt.Errorf("normalize: unknown script %q", name)
		}
		table.R16 = append(table.R16, r)
	}
	sortRanges(table)
	return &Normalizer{allowed: table}, nil
}

// Normalize returns text with every rune outside the allowed scripts
// removed. Deterministic and idempotent; never fails.
func (n *Normalizer) Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(n.allowed, r) {
			return r
		}
		return -1
	}, text)
}

// sortRanges orders R16 by Lo as unicode.Is requires.
func sortRanges(table *unicode.RangeTable) {
	for i := 1; i < len(table.R16); i++ {
		for j := i; j > 0 && table.R16[j].Lo < table.R16[j-1].Lo; j-- {
			table.R16[j], table.R16[j-1] = table.R16[j-1], table.R16[j]
		}
	}
}

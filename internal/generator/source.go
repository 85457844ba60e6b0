package generator

import "strings"

// Source supplies chunks of text to type. Consecutive chunks are meant to be
// joined with a single space.
type Source interface {
	Next() string
}

// SentenceSource emits random sentences.
type SentenceSource struct {
	Gen       *Generator
	Sentences []string
	Count     int
}

// Next implements Source.
func (s *SentenceSource) Next() string {
	return s.Gen.Sentences(s.Sentences, s.Count)
}

// WordSource emits random words with optional caps and punctuation.
type WordSource struct {
	Gen      *Generator
	Words    []string
	Count    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Next implements Source.
func (s *WordSource) Next() string {
	return strings.Join(s.Gen.Words(s.Words, s.Count, s.CapsPct, s.PunctPct, s.PunctSet), " ")
}

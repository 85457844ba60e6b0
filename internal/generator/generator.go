// Package generator builds typing text.
package generator

import (
	_ "embed"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/typetycoon/internal/wordlist"
)

//go:embed sentences.txt
var builtinSentences string

// DefaultSentences returns the built-in sentence corpus.
func DefaultSentences() []string {
	lines, err := wordlist.ReadLines(strings.NewReader(builtinSentences), wordlist.Typeable)
	if err != nil {
		panic("generator: invalid built-in sentences: " + err.Error())
	}
	return lines
}

// WordsFrom extracts unique lowercase words from sentences.
func WordsFrom(sentences []string) []string {
	seen := map[string]struct{}{}
	var words []string
	for _, s := range sentences {
		for _, field := range strings.Fields(s) {
			word := strings.ToLower(strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r)
			}))
			if !wordlist.LowerWord(word) {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}
	return words
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Sentences joins count randomly chosen sentences with spaces.
func (g *Generator) Sentences(sentences []string, count int) string {
	if len(sentences) == 0 || count <= 0 {
		return ""
	}
	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, sentences[g.rnd.Intn(len(sentences))])
	}
	return strings.Join(picked, " ")
}

// Words selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Words(words []string, count int, capsPct, punctPct float64, punctSet []rune) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 || rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 || rnd.Float64() > punctPct {
		return word
	}
	return word + string(punctSet[rnd.Intn(len(punctSet))])
}

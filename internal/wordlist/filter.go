// Package wordlist provides word list filtering helpers.
package wordlist

// FilterFunc returns true when a line should be kept.
type FilterFunc func(string) bool

// Typeable keeps lines made only of printable ASCII, which every keyboard
// layout can produce as a single key event.
func Typeable(line string) bool {
	if line == "" {
		return false
	}
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch < ' ' || ch > '~' {
			return false
		}
	}
	return true
}

// LowerWord keeps lowercase ASCII words.
func LowerWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

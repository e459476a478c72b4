package script

import (
	"sort"
	"unicode"
)

// Block is an inclusive codepoint range attributed to one writing system.
type Block struct {
	Lo, Hi rune
	System WritingSystem
}

// blocks is sorted by Lo and non-overlapping.
var blocks = []Block{
	{0x0000, 0x007F, English},
	{0x0900, 0x097F, Devanagari},
	{0x0980, 0x09FF, Bengali},
	{0x0A00, 0x0A7F, Punjabi},
	{0x0A80, 0x0AFF, Gujarati},
	{0x0B00, 0x0B7F, Odia},
	{0x0B80, 0x0BFF, Tamil},
	{0x0C00, 0x0C7F, Telugu},
	{0x0C80, 0x0CFF, Kannada},
	{0x0D00, 0x0D7F, Malayalam},
}

// Blocks returns a copy of the classification table.
func Blocks() []Block {
	return append([]Block(nil), blocks...)
}

func lookup(r rune) (WritingSystem, bool) {
	i := sort.Search(len(blocks), func(i int) bool { return blocks[i].Hi >= r })
	if i < len(blocks) && blocks[i].Lo <= r {
		return blocks[i].System, true
	}
	return "", false
}

// Classify returns the writing system with the most codepoints in text.
// Whitespace and codepoints outside the known blocks are not counted. Ties
// go to the system seen first. Text with nothing countable is English.
func Classify(text string) WritingSystem {
	counts := make(map[WritingSystem]int, 4)
	var order []WritingSystem
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		ws, ok := lookup(r)
		if !ok {
			continue
		}
		if counts[ws] == 0 {
			order = append(order, ws)
		}
		counts[ws]++
	}

	best := English
	bestCount := 0
	for _, ws := range order {
		if counts[ws] > bestCount {
			best, bestCount = ws, counts[ws]
		}
	}
	return best
}

package words

import (
	"math/rand"
	"strings"
)

// Fallback is shown for letters without an emoji set.
const Fallback = "❓"

var letterEmoji = map[rune][]string{
	'A': {"🍎", "✈️", "🅰️", "😡"},
	'B': {"🍌", "🦋", "🐝", "📚"},
	'C': {"🐱", "🍪", "🌽", "🍰"},
	'D': {"🐶", "🍩", "🎯", "☢️"},
	'E': {"🥚", "🐘", "🦅", "✉️"},
	'F': {"🐸", "🍟", "🌸", "🏳️"},
	'G': {"🦒", "🍇", "🎮", "💎"},
	'H': {"🏠", "🎩", "❤️", "😆"},
	'I': {"🍦", "🏝️", "🧊", "💉"},
	'J': {"👖", "🃏", "🤹", "🎌"},
	'K': {"🔑", "⌨️", "🪁", "🔪"},
	'L': {"🦁", "💡", "🍋", "🐞"},
	'M': {"🐒", "💵", "🌚", "🎖️"},
	'N': {"🎶", "🪺", "💅🏼", "🥜"},
	'O': {"🦉", "🍊", "⭕", "🐙"},
	'P': {"🍑", "🐧", "🥞", "🏓"},
	'Q': {"❓", "👸", "🏳️‍🌈", "🇶"},
	'R': {"🌈", "🐇", "🤖", "🌧️"},
	'S': {"🐍", "🌟", "🍓", "🌞"},
	'T': {"🌮", "🩺", "🌳", "🕒"},
	'U': {"☂️", "🌍", "🦄", "🔝"},
	'V': {"🎻", "🏐", "🌋", "🏺"},
	'W': {"🌊", "🍉", "♿", "💦"},
	'X': {"❌", "🩻", "🖾", "🙅"},
	'Y': {"🧶", "☯", "🛥️"},
	'Z': {"🧟‍♂️", "🦓", "🤐", "😴"},
}

// EmojiSet returns the candidate emoji for letter (any case).
func EmojiSet(letter rune) []string {
	set, ok := letterEmoji[toUpper(letter)]
	if !ok {
		return []string{Fallback}
	}
	return set
}

// EmojiFor picks one emoji for letter using rng. A zero letter yields Fallback.
func EmojiFor(letter rune, rng *rand.Rand) string {
	if letter == 0 {
		return Fallback
	}
	set := EmojiSet(letter)
	return set[rng.Intn(len(set))]
}

func toUpper(r rune) rune {
	return []rune(strings.ToUpper(string(r)))[0]
}

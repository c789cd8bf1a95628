package game

import (
	"math/rand"
	"unicode"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Choices returns ChoiceCount distinct upper-case letters, one of which is
// correct, in random order.
func Choices(correct rune, rng *rand.Rand) []string {
	first := string(unicode.ToUpper(correct))
	out := []string{first}
	used := map[string]bool{first: true}
	for len(out) < ChoiceCount {
		cand := string(alphabet[rng.Intn(len(alphabet))])
		if used[cand] {
			continue
		}
		used[cand] = true
		out = append(out, cand)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

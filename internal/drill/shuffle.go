package drill

import (
	"math/rand/v2"
	"slices"
)

// Shuffle returns the letters of word in a random order that differs from
// the word itself. The word must contain at least two distinct letters,
// otherwise no such order exists and Shuffle never returns.
func Shuffle(word string, r *rand.Rand) []rune {
	letters := []rune(word)
	for {
		out := slices.Clone(letters)
		r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		if !slices.Equal(out, letters) {
			return out
		}
	}
}

// questionRand is the random stream for the question at position. It depends
// only on the seed and the position, so replaying an advance reproduces the
// same letters.
func questionRand(seed uint64, position int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(position)))
}

func shuffleCurrent(s State) []rune {
	return Shuffle(s.Words.Current(), questionRand(s.Seed, s.Words.Index()))
}

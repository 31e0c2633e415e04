package mnemonic

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
)

// Challenge picks n distinct zero-based word positions the user must type
// back to prove they wrote the phrase down. Positions come from crypto/rand
// and are returned in ascending order.
func Challenge(n int) ([]int, error) {
	if n <= 0 || n > WordCount {
		return nil, ErrInvalidChallenge
	}

	picked := make(map[int]struct{}, n)
	limit := big.NewInt(WordCount)
	for len(picked) < n {
		v, err := rand.Int(entropySource, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
		}
		picked[int(v.Int64())] = struct{}{}
	}

	positions := make([]int, 0, n)
	for i := range picked {
		positions = append(positions, i)
	}
	slices.Sort(positions)

	return positions, nil
}

// Confirm checks the user's answers against the phrase. Answers are keyed by
// zero-based position and compared after normalization. An empty answer set
// or an out-of-range position never confirms.
func Confirm(p Phrase, answers map[int]string) bool {
	words := p.Words()
	if len(answers) == 0 || len(words) != WordCount {
		return false
	}

	for pos, answer := range answers {
		if pos < 0 || pos >= len(words) {
			return false
		}
		if Normalize(answer) != words[pos] {
			return false
		}
	}

	return true
}

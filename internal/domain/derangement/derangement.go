// Package derangement computes gift assignments: a random permutation of the
// participants in which nobody is assigned to themselves.
package derangement

import (
	"fmt"
	"math/rand/v2"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Draw returns a giver ID -> receiver ID mapping over participants.
//
// A Fisher-Yates shuffle of the IDs is paired position by position with the
// original order; a shuffle with any fixed point is thrown away and redone
// from scratch. A derangement exists for every n >= 2, so the loop ends.
// The result is fixed-point free but not proven uniform over derangements.
func Draw(participants []entities.Participant, src Source) (map[string]string, error) {
	n := len(participants)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInsufficientParticipants, n)
	}
	if src == nil {
		src = globalSource{}
	}

	givers := make([]string, n)
	seen := make(map[string]bool, n)
	for i, p := range participants {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = true
		givers[i] = p.ID
	}

	receivers := make([]string, n)
	for {
		copy(receivers, givers)
		shuffle(receivers, src)
		if !hasFixedPoint(givers, receivers) {
			break
		}
	}

	out := make(map[string]string, n)
	for i := range givers {
		out[givers[i]] = receivers[i]
	}
	return out, nil
}

func shuffle(s []string, src Source) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func hasFixedPoint(givers, receivers []string) bool {
	for i := range givers {
		if givers[i] == receivers[i] {
			return true
		}
	}
	return false
}

package derangement

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeParticipants(n int) []entities.Participant {
	out := make([]entities.Participant, n)
	for i := range out {
		out[i] = entities.Participant{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Participant %d", i)}
	}
	return out
}

func assertDerangement(t *testing.T, participants []entities.Participant, got map[string]string) {
	t.Helper()
	require.Len(t, got, len(participants))
	received := make(map[string]int, len(participants))
	for _, p := range participants {
		to, ok := got[p.ID]
		require.True(t, ok, "%s has no receiver", p.ID)
		assert.NotEqual(t, p.ID, to, "fixed point on %s", p.ID)
		received[to]++
	}
	for _, p := range participants {
		assert.Equal(t, 1, received[p.ID], "%s must receive exactly once", p.ID)
	}
}

func TestDraw_InsufficientParticipants(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1} {
		_, err := Draw(makeParticipants(n), nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientParticipants, "n=%d", n)
	}
}

func TestDraw_DuplicateID(t *testing.T) {
	t.Parallel()

	ps := []entities.Participant{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	_, err := Draw(ps, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateParticipant)
}

func TestDraw_TwoParticipantsSwap(t *testing.T) {
	t.Parallel()

	ps := makeParticipants(2)
	for seed := range uint64(50) {
		got, err := Draw(ps, rand.New(rand.NewPCG(seed, seed+1)))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"p0": "p1", "p1": "p0"}, got)
	}
}

func TestDraw_IsDerangement(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 7))
	for n := 2; n <= 40; n++ {
		ps := makeParticipants(n)
		for range 20 {
			got, err := Draw(ps, rng)
			require.NoError(t, err)
			assertDerangement(t, ps, got)
		}
	}
}

func TestDraw_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ps := makeParticipants(6)
	before := append([]entities.Participant(nil), ps...)
	_, err := Draw(ps, nil)
	require.NoError(t, err)
	assert.Equal(t, before, ps)
}

func TestDraw_ThreeParticipantsScenario(t *testing.T) {
	t.Parallel()

	ps := []entities.Participant{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	got, err := Draw(ps, nil)
	require.NoError(t, err)
	assertDerangement(t, ps, got)
	// With three people the only derangements are the two 3-cycles.
	cycle1 := map[string]string{"A": "B", "B": "C", "C": "A"}
	cycle2 := map[string]string{"A": "C", "B": "A", "C": "B"}
	assert.True(t, assert.ObjectsAreEqual(cycle1, got) || assert.ObjectsAreEqual(cycle2, got), "%v", got)
}

// Sanity check on spread, not a uniformity proof.
func TestDraw_DistributionNonDegenerate(t *testing.T) {
	t.Parallel()

	ps := makeParticipants(5)
	rng := rand.New(rand.NewPCG(2024, 12))
	counts := make(map[string]map[string]int, len(ps))
	for _, p := range ps {
		counts[p.ID] = make(map[string]int)
	}

	const runs = 10000
	for range runs {
		got, err := Draw(ps, rng)
		require.NoError(t, err)
		for from, to := range got {
			counts[from][to]++
		}
	}

	for _, giver := range ps {
		for _, receiver := range ps {
			c := counts[giver.ID][receiver.ID]
			if giver.ID == receiver.ID {
				assert.Zero(t, c)
				continue
			}
			// Expected around runs/4; anything under 10% of that is degenerate.
			assert.Greater(t, c, runs/40, "%s -> %s drawn %d times", giver.ID, receiver.ID, c)
		}
	}
}

type fixedSource struct{ values []int }

func (f *fixedSource) IntN(n int) int {
	v := f.values[0] % n
	f.values = f.values[1:]
	return v
}

func TestDraw_RetriesOnFixedPoint(t *testing.T) {
	t.Parallel()

	// First shuffle of [a b] keeps the order (j=1 at i=1), second swaps (j=0).
	src := &fixedSource{values: []int{1, 0}}
	got, err := Draw([]entities.Participant{{ID: "a"}, {ID: "b"}}, src)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b", "b": "a"}, got)
	assert.Empty(t, src.values)
}

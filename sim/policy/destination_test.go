package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elevator-sim/elevator-sim/sim"
)

func TestBestDestination(t *testing.T) {
	t.Run("distance weight favours the near stop", func(t *testing.T) {
		s := newQuietStrategy(t, sim.Left, noRollouts(), 2500)
		e := place(s, 0, 0, 0)
		aboard(t, s, e, sim.Left, 0, 6)
		aboard(t, s, e, sim.Left, 0, 6)
		aboard(t, s, e, sim.Left, 0, 2)

		// floor 2: -20 + 2*70 = 120, floor 6: -120 - 10 + 6*70 = 290
		assert.Equal(t, 2, BestDestination(s.Sim, e, 0, 70))
		// without distance cost the bunched, valuable stop wins
		assert.Equal(t, 6, BestDestination(s.Sim, e, 0, 0))
	})

	t.Run("tie keeps the lower floor", func(t *testing.T) {
		s := newQuietStrategy(t, sim.Left, noRollouts(), 2500)
		e := place(s, 0, 2, 0)
		aboard(t, s, e, sim.Left, 2, 3)
		aboard(t, s, e, sim.Left, 2, 1)

		assert.Equal(t, 1, BestDestination(s.Sim, e, 2, 70))
	})

	t.Run("opposite side riders count double", func(t *testing.T) {
		s := newQuietStrategy(t, sim.Right, noRollouts(), 2500)
		e := place(s, 4, 4, 0)
		aboard(t, s, e, sim.Left, 4, 1)  // 2*30 = 60
		aboard(t, s, e, sim.Right, 4, 8) // 40

		assert.Equal(t, 1, BestDestination(s.Sim, e, 4, 0))
	})

	t.Run("empty elevator stays", func(t *testing.T) {
		s := newQuietStrategy(t, sim.Left, noRollouts(), 2500)
		e := place(s, 1, 5, 0)
		fillWithStrangers(e, 3)

		assert.Equal(t, 5, BestDestination(s.Sim, e, 5, 70))
	})
}

func TestBunchingBonus(t *testing.T) {
	tests := []struct {
		riders int
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 10},
		{3, 20},
		{4, 40},
		{5, 70},
		{7, 130},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bunchingBonus(tt.riders), "riders=%d", tt.riders)
	}
}

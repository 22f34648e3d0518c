package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicyBest(t *testing.T) {
	policy := Policy[string]{
		{Action: "explored", Visits: 10, Mean: 0.1, Score: 0.9},
		{Action: "visited", Visits: 50, Mean: 0.2, Score: 0.5},
		{Action: "promising", Visits: 5, Mean: 0.6, Score: 1.5},
	}

	tests := []struct {
		name     string
		final    FinalPolicy
		expected string
	}{
		{"highest UCB", BestChildUCB, "promising"},
		{"most visits", BestChildMostVisits, "visited"},
		{"best win rate", BestChildWinRate, "promising"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := policy.Best(tt.final)

			require.True(t, ok)
			require.Equal(t, tt.expected, got)
		})
	}

	t.Run("ties go to the first expanded action", func(t *testing.T) {
		tied := Policy[string]{
			{Action: "first", Visits: 3, Score: 1},
			{Action: "second", Visits: 3, Score: 1},
		}

		got, ok := tied.Best(BestChildMostVisits)

		require.True(t, ok)
		require.Equal(t, "first", got)
	})

	t.Run("empty policy has no best action", func(t *testing.T) {
		_, ok := Policy[string]{}.Best(BestChildUCB)
		require.False(t, ok)
	})
}

func TestPolicyVisits(t *testing.T) {
	policy := Policy[int]{{Action: 1, Visits: 4}, {Action: 2, Visits: 6}}

	require.Equal(t, map[int]float64{1: 4, 2: 6}, policy.Visits())
}

func TestParseFinalPolicy(t *testing.T) {
	for _, final := range []FinalPolicy{BestChildUCB, BestChildMostVisits, BestChildWinRate} {
		parsed, err := ParseFinalPolicy(final.String())
		require.NoError(t, err)
		require.Equal(t, final, parsed)
	}

	parsed, err := ParseFinalPolicy("")
	require.NoError(t, err)
	require.Equal(t, BestChildUCB, parsed, "Empty name should select the default")

	_, err = ParseFinalPolicy("robust")
	require.Error(t, err)
}

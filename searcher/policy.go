package searcher

import (
	"fmt"
	"strings"
)

// FinalPolicy decides which root action a finished search returns
type FinalPolicy int

const (
	// Highest UCB score from the searching player's perspective
	BestChildUCB FinalPolicy = iota
	// Most visited root action
	BestChildMostVisits
	// Highest mean reward
	BestChildWinRate
)

func (p FinalPolicy) String() string {
	switch p {
	case BestChildUCB:
		return "ucb"
	case BestChildMostVisits:
		return "visits"
	case BestChildWinRate:
		return "winrate"
	default:
		return fmt.Sprintf("FinalPolicy(%d)", int(p))
	}
}

func ParseFinalPolicy(name string) (FinalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ucb":
		return BestChildUCB, nil
	case "visits":
		return BestChildMostVisits, nil
	case "winrate":
		return BestChildWinRate, nil
	default:
		return BestChildUCB, fmt.Errorf("unknown final policy %q", name)
	}
}

// ActionStats holds the statistics of a root action, from the perspective of the
// player the search was run for.
type ActionStats[A comparable] struct {
	Action A
	Visits int
	Mean   float64
	Score  float64 // UCB
}

// Policy lists the expanded root actions in expansion order
type Policy[A comparable] []ActionStats[A]

func newPolicy[A comparable](root *node[A], bot Player, c float64) Policy[A] {
	policy := make(Policy[A], 0, len(root.order))
	for _, action := range root.order {
		child := root.children[action]
		mean := child.mean(bot)
		policy = append(policy, ActionStats[A]{
			Action: action,
			Visits: child.visits,
			Mean:   mean,
			Score:  ucb(mean, child.visits, root.visits, c),
		})
	}
	return policy
}

// Best returns the action preferred by the final policy. Ties go to the action
// expanded first.
func (p Policy[A]) Best(final FinalPolicy) (A, bool) {
	var best A
	if len(p) == 0 {
		return best, false
	}

	bestIndex := 0
	for i, stats := range p[1:] {
		if p.better(final, stats, p[bestIndex]) {
			bestIndex = i + 1
		}
	}
	return p[bestIndex].Action, true
}

func (p Policy[A]) better(final FinalPolicy, a, b ActionStats[A]) bool {
	switch final {
	case BestChildMostVisits:
		return a.Visits > b.Visits
	case BestChildWinRate:
		return a.Mean > b.Mean
	default:
		return a.Score > b.Score
	}
}

// Visits maps each root action to its visit count
func (p Policy[A]) Visits() map[A]float64 {
	visits := make(map[A]float64, len(p))
	for _, stats := range p {
		visits[stats.Action] = float64(stats.Visits)
	}
	return visits
}

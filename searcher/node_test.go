package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// treeBoard is a game given by an explicit table of states
type treeBoard struct {
	states map[int]treeState
}

type treeState struct {
	player  Player
	next    map[string]int
	actions []string
	outcome map[Player]float64 // Terminal when set
}

func (b treeBoard) CurrentPlayer(state int) Player {
	return b.states[state].player
}

func (b treeBoard) LegalActions(state int) []string {
	return b.states[state].actions
}

func (b treeBoard) NextState(state int, action string) int {
	next, ok := b.states[state].next[action]
	if !ok {
		panic("illegal action " + action)
	}
	return next
}

func (b treeBoard) IsEnded(state int) bool {
	return b.states[state].outcome != nil
}

func (b treeBoard) PointsValues(state int) map[Player]float64 {
	return b.states[state].outcome
}

var (
	player1Wins = map[Player]float64{1: 1, 2: -1}
	player2Wins = map[Player]float64{1: -1, 2: 1}
	draw        = map[Player]float64{1: 0, 2: 0}
)

// nim is a take-away game: players alternately take 1 to 3 stones and whoever
// takes the last stone wins.
type nim struct{}

type nimState struct {
	stones int
	player Player
}

func (nim) CurrentPlayer(state nimState) Player {
	return state.player
}

func (nim) LegalActions(state nimState) []int {
	actions := []int{}
	for take := 1; take <= 3 && take <= state.stones; take++ {
		actions = append(actions, take)
	}
	return actions
}

func (nim) NextState(state nimState, take int) nimState {
	return nimState{stones: state.stones - take, player: 3 - state.player}
}

func (nim) IsEnded(state nimState) bool {
	return state.stones == 0
}

func (nim) PointsValues(state nimState) map[Player]float64 {
	if state.stones > 0 {
		return nil
	}
	// The player who took the last stone has just moved
	winner := 3 - state.player
	return map[Player]float64{winner: 1, state.player: -1}
}

func TestNewNode(t *testing.T) {
	t.Run("creating a root node", func(t *testing.T) {
		actions := []string{"a", "b"}
		root := newNode(nil, "", Player(1), actions)

		require.Nil(t, root.parent, "Root should have no parent")
		require.Equal(t, []string{"a", "b"}, root.untried, "All legal actions should be untried")
		require.Empty(t, root.children, "Root should have no children")
		require.Zero(t, root.visits)
		require.Zero(t, root.wins)
		require.False(t, root.isFullyExpanded())
	})

	t.Run("untried actions do not alias the legal actions", func(t *testing.T) {
		actions := []string{"a", "b"}
		root := newNode(nil, "", Player(1), actions)
		root.addChild(0, Player(2), nil)

		require.Equal(t, []string{"a", "b"}, actions, "Expansion should not modify the caller's slice")
	})
}

func TestNodeAddChild(t *testing.T) {
	root := newNode(nil, "", Player(1), []string{"a", "b", "c"})

	child := root.addChild(0, Player(2), []string{"x"})

	require.Same(t, root, child.parent)
	require.Equal(t, "a", child.action)
	require.Equal(t, Player(2), child.player)
	require.Equal(t, []string{"x"}, child.untried)
	require.Same(t, child, root.children["a"])
	require.Equal(t, []string{"a"}, root.order)
	require.ElementsMatch(t, []string{"b", "c"}, root.untried, "Expanded action should leave the untried set")

	root.addChild(1, Player(2), nil)
	root.addChild(0, Player(2), nil)
	require.True(t, root.isFullyExpanded())
	require.Len(t, root.children, 3)
	require.Equal(t, 4, root.size())
}

func TestNodeUpdate(t *testing.T) {
	root := newNode(nil, "", Player(1), []string{"a"})
	child := root.addChild(0, Player(2), nil)

	parent := child.update(LOSS)
	require.Same(t, root, parent, "Update should return the parent")
	require.Nil(t, root.update(WIN), "Root update should end the walk")

	require.Equal(t, -1.0, child.wins)
	require.Equal(t, 1, child.visits)
	require.Equal(t, 1.0, child.mean(Player(1)), "A loss for player 2 is a win for player 1")
	require.Equal(t, -1.0, child.mean(Player(2)))
}

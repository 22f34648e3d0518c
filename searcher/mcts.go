package searcher

import (
	"fmt"
	"math"
	"time"

	"mcts/experiments/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *settings)

type settings struct {
	episodes          int
	explorationFactor float64
	seed              uint64
	finalPolicy       FinalPolicy
	metrics           metrics.Collector
	logger            zerolog.Logger
}

// MCTS runs single-threaded vanilla Monte Carlo tree searches. A fresh tree is
// built for every search and dropped when the search returns.
type MCTS[S any, A comparable] struct {
	settings
	rng *rand.Rand
}

func WithEpisodes(episodes int) Option {
	return func(s *settings) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

func WithExplorationFactor(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.explorationFactor = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithFinalPolicy(policy FinalPolicy) Option {
	return func(s *settings) {
		s.finalPolicy = policy
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func NewMCTS[S any, A comparable](options ...Option) *MCTS[S, A] {
	s := settings{ // Default values
		episodes:          DefaultEpisodes,
		explorationFactor: DefaultExplorationFactor,
		seed:              uint64(time.Now().UnixNano()),
		finalPolicy:       BestChildUCB,
		metrics:           metrics.NewDummyCollector(),
		logger:            log.Logger,
	}
	for _, option := range options {
		option(&s)
	}
	if s.episodes <= 0 {
		panic("Must specify search episodes")
	}
	return &MCTS[S, A]{
		settings: s,
		rng:      rand.New(rand.NewSource(s.seed)),
	}
}

// Think searches from state and returns the action to play for the player to move.
func (m *MCTS[S, A]) Think(board Board[S, A], state S) (A, error) {
	action, _, err := m.FindMove(board, state)
	return action, err
}

// FindMove is Think that also reports the metrics of the search.
func (m *MCTS[S, A]) FindMove(board Board[S, A], state S) (A, metrics.SearchMetric, error) {
	var best A
	policy, metric, err := m.Simulate(board, state)
	if err != nil {
		return best, metric, err
	}

	best, ok := policy.Best(m.finalPolicy)
	if !ok {
		return best, metric, ErrNoLegalActions
	}

	m.logger.Info().
		Int("episodes", m.episodes).
		Int("player", int(board.CurrentPlayer(state))).
		Msgf("action chosen: %v", best)
	return best, metric, nil
}

// Simulate builds a search tree from state and returns the statistics of the root actions.
func (m *MCTS[S, A]) Simulate(board Board[S, A], state S) (Policy[A], metrics.SearchMetric, error) {
	if board.IsEnded(state) {
		return nil, metrics.SearchMetric{}, ErrGameOver
	}
	actions := board.LegalActions(state)
	if len(actions) == 0 {
		return nil, metrics.SearchMetric{}, fmt.Errorf("non-terminal state: %w", ErrNoLegalActions)
	}

	bot := board.CurrentPlayer(state)
	var none A
	root := newNode(nil, none, bot, actions)

	m.logger.Debug().Msgf("searching %d episodes for player %d over %d actions", m.episodes, bot, len(actions))

	m.metrics.Start(m.explorationFactor)
	for i := 0; i < m.episodes; i++ {
		m.simulate(root, board, state, bot)
		m.metrics.AddEpisode()
	}
	metric := m.metrics.Complete(root.size())

	return newPolicy(root, bot, m.explorationFactor), metric, nil
}

func (m *MCTS[S, A]) simulate(root *node[A], board Board[S, A], state S, bot Player) {
	leaf, leafState := m.traverse(root, board, state, bot)
	terminal := m.rollout(board, leafState)
	outcome := evaluate(board, terminal)
	m.metrics.AddFullPlayout(isWin(outcome, bot))
	backpropagate(leaf, outcome)
}

// traverse descends from root to the first node with untried actions, or to a
// terminal node, and expands it. It returns the expanded child (or the terminal
// node) with its state.
func (m *MCTS[S, A]) traverse(root *node[A], board Board[S, A], state S, bot Player) (*node[A], S) {
	current, depth := root, 0
	for !board.IsEnded(state) && current.isFullyExpanded() {
		action := m.selectChild(current, bot, board.CurrentPlayer(state) == bot)
		current = current.children[action]
		state = board.NextState(state, action)
		depth++
	}

	child, childState, expanded := m.expand(current, board, state)
	if expanded {
		m.metrics.AddExpansion()
		depth++
	}
	m.metrics.ObserveDepth(depth)
	return child, childState
}

// selectChild picks the child with the highest UCB for the bot when the bot moves,
// and the lowest bot score (the opponent's UCB) otherwise.
func (m *MCTS[S, A]) selectChild(parent *node[A], bot Player, isBotTurn bool) A {
	if len(parent.order) == 0 {
		panic("non-terminal node has no legal actions")
	}

	best := parent.order[0]
	bestScore := math.Inf(-1)
	for _, action := range parent.order {
		child := parent.children[action]
		if child.visits == 0 {
			return action
		}

		var score float64
		if isBotTurn {
			score = ucb(child.mean(bot), child.visits, parent.visits, m.explorationFactor)
		} else {
			// Minimizing the bot's lower bound maximizes the opponent's UCB
			score = -(child.mean(bot) - exploration(child.visits, parent.visits, m.explorationFactor))
		}
		if score > bestScore {
			bestScore = score
			best = action
		}
	}
	return best
}

// expand adds a child for a random untried action of a non-terminal node
func (m *MCTS[S, A]) expand(parent *node[A], board Board[S, A], state S) (*node[A], S, bool) {
	if board.IsEnded(state) {
		return parent, state, false
	}

	i := m.rng.Intn(len(parent.untried))
	next := board.NextState(state, parent.untried[i])
	child := parent.addChild(i, board.CurrentPlayer(next), board.LegalActions(next))
	return child, next, true
}

// rollout plays uniformly random actions until the game ends
func (m *MCTS[S, A]) rollout(board Board[S, A], state S) S {
	for !board.IsEnded(state) {
		actions := board.LegalActions(state)
		if len(actions) == 0 {
			panic("non-terminal state has no legal actions")
		}
		state = board.NextState(state, actions[m.rng.Intn(len(actions))])
	}
	return state
}

func evaluate[S any, A comparable](board Board[S, A], state S) map[Player]float64 {
	if !board.IsEnded(state) {
		panic("outcome requested for a non-terminal state")
	}
	outcome := board.PointsValues(state)
	if outcome == nil {
		panic("terminal state has no outcome")
	}
	return outcome
}

func isWin(outcome map[Player]float64, player Player) bool {
	return outcome[player] == WIN
}

// reward converts a terminal outcome into the reward of player
func reward(outcome map[Player]float64, player Player) float64 {
	if isWin(outcome, player) {
		return WIN
	}
	for other := range outcome {
		if other != player && isWin(outcome, other) {
			return LOSS
		}
	}
	return DRAW
}

func backpropagate[A comparable](leaf *node[A], outcome map[Player]float64) {
	current := leaf
	for current != nil {
		current = current.update(reward(outcome, current.player))
	}
}

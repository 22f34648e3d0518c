package experiments

import (
	"context"
	"fmt"
	"time"

	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/meta"
	"mcts/searcher"
	"mcts/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Dir      string // Empty when no records were written
	Games    []metrics.GameRecord
	Moves    []metrics.MoveRecord
	Standing []Standing
}

// Standing sums up the games of one matchup
type Standing struct {
	Agent1, Agent2 int
	Wins1, Wins2   int
	Draws          int
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays every matchup of the experiment on tic-tac-toe and writes the records
// under config.OutDir when it is set. Games of a matchup run concurrently; every
// game owns its agents, so each search stays single-threaded.
func Run(ctx context.Context, config meta.ExperimentConfig, seed uint64) (Result, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	agents := make(map[int]metrics.AgentConfig, len(config.Agents))
	for _, a := range config.Agents {
		agents[a.ID] = a
	}

	log.Info().Msgf("starting %s experiment...", config.Name)

	var result Result
	for mi, matchup := range config.Matchups {
		config1, ok1 := agents[matchup.Agent1]
		config2, ok2 := agents[matchup.Agent2]
		if !ok1 || !ok2 {
			return result, fmt.Errorf("matchup %d names an unknown agent: %w", mi+1, meta.ErrInvalidConfig)
		}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(config.Matchups), config1, config2)

		results := make([]gameResult, config.Games)
		g, ctx := errgroup.WithContext(ctx)
		if config.Parallel > 0 {
			g.SetLimit(config.Parallel)
		}
		for i := 0; i < config.Games; i++ {
			i := i
			id := len(result.Games) + i + 1
			// Alternate the starting agent
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := runGame(id, first, second, seed+uint64(id)*2)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				results[i] = r
				log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(config.Matchups), i+1, r.record.Winner)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return result, err
		}

		standing := Standing{Agent1: config1.ID, Agent2: config2.ID}
		for _, r := range results {
			result.Games = append(result.Games, r.record)
			result.Moves = append(result.Moves, r.moves...)
			standing.add(r.record)
		}
		result.Standing = append(result.Standing, standing)

		log.Info().Msgf("completed matchup %d of %d: agent %d won %d, agent %d won %d, %d draws",
			mi+1, len(config.Matchups), standing.Agent1, standing.Wins1, standing.Agent2, standing.Wins2, standing.Draws)
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	if config.OutDir == "" {
		return result, nil
	}
	dir, err := store(config, result)
	if err != nil {
		return result, err
	}
	result.Dir = dir
	return result, nil
}

func (s *Standing) add(record metrics.GameRecord) {
	// Player 1 is always the first agent of the record
	var winner int
	switch record.Winner {
	case int(game.X):
		winner = record.Agent1
	case int(game.O):
		winner = record.Agent2
	default:
		s.Draws++
		return
	}
	if winner == s.Agent1 {
		s.Wins1++
	} else {
		s.Wins2++
	}
}

func store(config meta.ExperimentConfig, result Result) (string, error) {
	writer, err := metrics.NewWriter(config.OutDir, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents, first playing X
func runGame(id int, first, second metrics.AgentConfig, seed uint64) (gameResult, error) {
	agentX, err := createAgent(first, seed)
	if err != nil {
		return gameResult{}, err
	}
	agentO, err := createAgent(second, seed+1)
	if err != nil {
		return gameResult{}, err
	}

	e := engine.NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, map[searcher.Player]agent.Agent[game.State, game.Cell]{
		game.X: agentX,
		game.O: agentO,
	})
	_, gameMetric, moveMetrics, err := e.Run(game.NewState())
	if err != nil {
		return gameResult{}, err
	}

	r := gameResult{
		record: metrics.GameRecord{ID: id, Agent1: first.ID, Agent2: second.ID, GameMetric: gameMetric},
		moves:  make([]metrics.MoveRecord, 0, len(moveMetrics)),
	}
	for _, mm := range moveMetrics {
		r.moves = append(r.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return r, nil
}

func createAgent(config metrics.AgentConfig, seed uint64) (agent.Agent[game.State, game.Cell], error) {
	if config.Kind == metrics.KindRandom {
		return agent.NewRandomAgent[game.State, game.Cell](seed), nil
	}

	search := meta.SearchConfig{
		Episodes:          config.Episodes,
		ExplorationFactor: config.ExplorationFactor,
		FinalPolicy:       config.FinalPolicy,
		Seed:              seed,
		Metrics:           true,
	}
	// Omitted settings fall back to the defaults
	if search.Episodes == 0 {
		search.Episodes = meta.EPISODES
	}
	if search.ExplorationFactor == 0 {
		search.ExplorationFactor = meta.EXPLORATION_FACTOR
	}
	options, err := search.Options()
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	// Per-move logs of concurrent games would interleave
	options = append(options, searcher.WithLogger(log.Level(zerolog.WarnLevel)))
	mcts := searcher.NewMCTS[game.State, game.Cell](options...)

	switch config.Kind {
	case metrics.KindMCTS:
		return agent.NewEvaluationAgent(mcts), nil
	case metrics.KindSampling:
		return agent.NewSamplingAgent(mcts, config.Temperature, seed), nil
	default:
		return nil, fmt.Errorf("agent %d has unknown kind %q: %w", config.ID, config.Kind, meta.ErrInvalidConfig)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"mcts/engine"
	"mcts/experiments"
	"mcts/game"
	"mcts/meta"
	"mcts/searcher"
	"mcts/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mcts",
		Short:         "Monte Carlo tree search for two-player games",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newPlayCmd(), newExperimentCmd())
	return root
}

func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func loadConfig() (meta.Config, error) {
	if configPath == "" {
		return meta.Default(), nil
	}
	return meta.Load(configPath)
}

func newPlayCmd() *cobra.Command {
	var (
		episodes    int
		exploration float64
		seed        uint64
		finalPolicy string
		opponent    string
		side        string
		board       string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game of tic-tac-toe with the search agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			// Flags override the config file
			flags := cmd.Flags()
			if flags.Changed("episodes") {
				config.Search.Episodes = episodes
			}
			if flags.Changed("exploration") {
				config.Search.ExplorationFactor = exploration
			}
			if flags.Changed("seed") {
				config.Search.Seed = seed
			}
			if flags.Changed("final-policy") {
				config.Search.FinalPolicy = finalPolicy
			}

			state := game.NewState()
			if board != "" {
				if state, err = game.ParseState(board); err != nil {
					return err
				}
			}
			return play(cmd, config.Search, state, opponent, side)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&episodes, "episodes", meta.EPISODES, "search iterations per move")
	flags.Float64Var(&exploration, "exploration", meta.EXPLORATION_FACTOR, "UCB exploration factor")
	flags.Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	flags.StringVar(&finalPolicy, "final-policy", searcher.BestChildUCB.String(), "final action policy (ucb, visits, winrate)")
	flags.StringVar(&opponent, "opponent", "random", "opponent agent (random, mcts)")
	flags.StringVar(&side, "side", "x", "side played by the search agent (x, o)")
	flags.StringVar(&board, "board", "", "starting position, e.g. \"XO./.X./...\"")
	return cmd
}

func play(cmd *cobra.Command, search meta.SearchConfig, state game.State, opponent, side string) error {
	options, err := search.Options()
	if err != nil {
		return err
	}

	bot := game.X
	switch strings.ToLower(side) {
	case "x":
	case "o":
		bot = game.O
	default:
		return fmt.Errorf("unknown side %q", side)
	}

	agents := map[searcher.Player]agent.Agent[game.State, game.Cell]{
		bot: agent.NewEvaluationAgent(searcher.NewMCTS[game.State, game.Cell](options...)),
	}
	switch opponent {
	case "random":
		opponentSeed := search.Seed + 1
		if search.Seed == 0 {
			opponentSeed = uint64(time.Now().UnixNano())
		}
		agents[game.Opponent(bot)] = agent.NewRandomAgent[game.State, game.Cell](opponentSeed)
	case "mcts":
		if search.Seed != 0 {
			options = append(options, searcher.WithSeed(search.Seed+1))
		}
		agents[game.Opponent(bot)] = agent.NewEvaluationAgent(searcher.NewMCTS[game.State, game.Cell](options...))
	default:
		return fmt.Errorf("unknown opponent %q", opponent)
	}

	out := cmd.OutOrStdout()
	output := termenv.NewOutput(out)
	fmt.Fprint(out, game.Render(state, -1, output))

	e := engine.NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, agents)
	e.OnMove(func(step int, player searcher.Player, move game.Cell, state game.State) {
		fmt.Fprintf(out, "\n%d. %c plays %v\n", step, "?XO"[player], move)
		fmt.Fprint(out, game.Render(state, move, output))
	})

	winner, gameMetric, _, err := e.Run(state)
	if err != nil {
		return err
	}

	result := "draw"
	if winner != game.Empty {
		result = fmt.Sprintf("%c wins", "?XO"[winner])
	}
	fmt.Fprintf(out, "\n%s after %d moves (%v)\n", output.String(result).Bold(), gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}

func newExperimentCmd() *cobra.Command {
	var (
		outDir string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run the matchups of the config file and write CSV records",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			if len(config.Experiment.Matchups) == 0 {
				return fmt.Errorf("config declares no matchups: %w", meta.ErrInvalidConfig)
			}
			if cmd.Flags().Changed("out") {
				config.Experiment.OutDir = outDir
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			result, err := experiments.Run(ctx, config.Experiment, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range result.Standing {
				fmt.Fprintf(out, "agent %d vs agent %d: %d-%d, %d draws\n", s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.Draws)
			}
			if result.Dir != "" {
				fmt.Fprintf(out, "records written to %s\n", result.Dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", meta.OUTPUT_DIR, "directory for experiment records (empty to skip)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	return cmd
}

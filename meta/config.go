package meta

import (
	"errors"
	"fmt"
	"os"

	"mcts/experiments/metrics"
	"mcts/searcher"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the file form of the search and experiment settings.
type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

type SearchConfig struct {
	Episodes          int     `yaml:"episodes"`
	ExplorationFactor float64 `yaml:"exploration_factor"`
	Seed              uint64  `yaml:"seed"` // 0 seeds from the clock
	FinalPolicy       string  `yaml:"final_policy"`
	Metrics           bool    `yaml:"metrics"`
}

type ExperimentConfig struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"`
	Parallel int                   `yaml:"parallel"`
	OutDir   string                `yaml:"out_dir"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	Matchups []Matchup             `yaml:"matchups"`
}

// Matchup pairs two agents by ID, Agent1 moves first in odd games
type Matchup struct {
	Agent1 int `yaml:"agent1"`
	Agent2 int `yaml:"agent2"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Episodes:          EPISODES,
			ExplorationFactor: EXPLORATION_FACTOR,
			FinalPolicy:       searcher.BestChildUCB.String(),
		},
		Experiment: ExperimentConfig{
			Name:     "exploration",
			Games:    GAMES,
			Parallel: PARALLEL_GAMES,
			OutDir:   OUTPUT_DIR,
		},
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}

	e := c.Experiment
	if e.Games < 0 || e.Parallel < 0 {
		return fmt.Errorf("games and parallel must not be negative: %w", ErrInvalidConfig)
	}
	ids := map[int]bool{}
	for _, a := range e.Agents {
		if ids[a.ID] {
			return fmt.Errorf("duplicate agent id %d: %w", a.ID, ErrInvalidConfig)
		}
		ids[a.ID] = true
		if err := validateAgent(a); err != nil {
			return err
		}
	}
	for _, m := range e.Matchups {
		if !ids[m.Agent1] || !ids[m.Agent2] {
			return fmt.Errorf("matchup %d vs %d names an unknown agent: %w", m.Agent1, m.Agent2, ErrInvalidConfig)
		}
	}
	return nil
}

func (s SearchConfig) Validate() error {
	if s.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d: %w", s.Episodes, ErrInvalidConfig)
	}
	if s.ExplorationFactor < 0 {
		return fmt.Errorf("exploration factor must not be negative, got %v: %w", s.ExplorationFactor, ErrInvalidConfig)
	}
	if _, err := searcher.ParseFinalPolicy(s.FinalPolicy); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}
	return nil
}

func validateAgent(a metrics.AgentConfig) error {
	switch a.Kind {
	case metrics.KindMCTS, metrics.KindSampling:
		if a.Episodes < 0 || a.ExplorationFactor < 0 {
			return fmt.Errorf("agent %d has negative search settings: %w", a.ID, ErrInvalidConfig)
		}
		if _, err := searcher.ParseFinalPolicy(a.FinalPolicy); err != nil {
			return fmt.Errorf("agent %d: %v: %w", a.ID, err, ErrInvalidConfig)
		}
		if a.Kind == metrics.KindSampling && a.Temperature <= 0 {
			return fmt.Errorf("sampling agent %d needs a positive temperature: %w", a.ID, ErrInvalidConfig)
		}
	case metrics.KindRandom:
	default:
		return fmt.Errorf("agent %d has unknown kind %q: %w", a.ID, a.Kind, ErrInvalidConfig)
	}
	return nil
}

// Options converts the search settings into searcher options
func (s SearchConfig) Options() ([]searcher.Option, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	final, _ := searcher.ParseFinalPolicy(s.FinalPolicy)

	options := []searcher.Option{
		searcher.WithEpisodes(s.Episodes),
		searcher.WithExplorationFactor(s.ExplorationFactor),
		searcher.WithFinalPolicy(final),
	}
	if s.Seed != 0 {
		options = append(options, searcher.WithSeed(s.Seed))
	}
	if s.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return options, nil
}

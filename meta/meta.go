// meta/meta.go
package meta

import "mcts/searcher"

// EPISODES defines the number of search iterations per move.
const EPISODES = searcher.DefaultEpisodes

// EXPLORATION_FACTOR defines the UCB exploration weight.
const EXPLORATION_FACTOR = searcher.DefaultExplorationFactor

// GAMES defines the number of games played per matchup.
const GAMES = 10

// PARALLEL_GAMES defines how many games of a matchup run at once.
const PARALLEL_GAMES = 4

// OUTPUT_DIR defines where experiment records are written.
const OUTPUT_DIR = "experiments"

package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant squared, C = sqrt(2)

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)
const Draw = 0.0

// MaxCutoff lets playouts run until the game is over.
const MaxCutoff = math.MaxInt

// Infinity bounds every score handled by the tree searches. Evaluator results are
// clamped to [-Infinity, Infinity] so that math.MinInt and math.MaxInt stay free as
// tracker baselines.
const Infinity = math.MaxInt - 1

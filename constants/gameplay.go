package constants

// Card Loop Constants
const (
	// CardGoal is the score that wins a card run
	CardGoal = 20

	// CardTurns is the number of plays in a run
	CardTurns = 10

	// CardHandSize is the number of hand slots
	CardHandSize = 3

	// CardComboStep grants +1 bonus every N consecutive positive plays
	CardComboStep = 3

	// RelicChance is the per-play probability of finding a relic
	RelicChance = 0.10

	// RelicCap is the maximum number of relics held
	RelicCap = 3
)

// Narrative Constants
const (
	// StatMin is the lower bound for every narrative stat
	StatMin = 0

	// StatMax is the upper bound for every narrative stat
	StatMax = 999

	// ShardCount is the number of collectible signal shards shown per node
	ShardCount = 8
)

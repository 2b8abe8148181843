package tournament

import "time"

// Weighted scoring blends XP and points per verified share
const (
	WeightedScoreXPFactor     = 0.6
	WeightedScorePointsFactor = 0.4
)

// Performance bonus tiers by current rank percentile
const (
	PerfTopTierPercentile = 10.0
	PerfMidTierPercentile = 25.0
	PerfLowTierPercentile = 50.0

	PerfTopTierXPBonus     = 0.30
	PerfTopTierPointsBonus = 0.15
	PerfMidTierXPBonus     = 0.20
	PerfMidTierPointsBonus = 0.10
	PerfLowTierXPBonus     = 0.10
	PerfLowTierPointsBonus = 0.05
)

// Streak bonus: flat XP/points per unique participation day, from the third
// unique day onward
const (
	StreakMinUniqueDays = 3
	StreakXPPerDay      = 20
	StreakPointsPerDay  = 5
)

// Special event bonus for featured or special_event tournaments
const (
	EventXPBonus     = 0.20
	EventPointsBonus = 0.10
)

// Early-bird window, measured from tournament start to share creation
const EarlyBirdWindow = 24 * time.Hour

// Participant bonus multiplier components. Each stays >= 1.0.
const (
	EarlyBirdMultiplier  = 1.10
	ReferralMultiplier   = 1.05
	StreakMultiplierStep = 0.02
	StreakMultiplierCap  = 1.20
	PerfTopMultiplier    = 1.15
	PerfMidMultiplier    = 1.10
	PerfLowMultiplier    = 1.05
)

// Rank band upper bound for the top_10 prize tier
const Top10MaxRank = 10

// Lock key prefixes
const (
	scoreLockPrefix      = "score:"
	distributeLockPrefix = "distribute:"
)

// Log messages
const (
	LogMsgShareScored        = "Tournament share scored"
	LogMsgRanksRecomputed    = "Leaderboard ranks recomputed"
	LogMsgTournamentClosed   = "Tournament closed"
	LogMsgPrizesDistributed  = "Tournament prizes distributed"
	LogMsgDistributionNoOp   = "Prizes already distributed, skipping"
	LogMsgAppealResolved     = "Disqualification appeal resolved"
)

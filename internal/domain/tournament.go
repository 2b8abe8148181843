package domain

import "time"

// ScoringMethod selects how a participant's base score is computed
type ScoringMethod string

const (
	ScoringSharesCount   ScoringMethod = "shares_count"
	ScoringXPEarned      ScoringMethod = "xp_earned"
	ScoringPointsEarned  ScoringMethod = "points_earned"
	ScoringWeightedScore ScoringMethod = "weighted_score"
)

// TournamentStatus is the tournament lifecycle state
type TournamentStatus string

const (
	TournamentDraft             TournamentStatus = "draft"
	TournamentScheduled         TournamentStatus = "scheduled"
	TournamentLive              TournamentStatus = "live"
	TournamentCompleted         TournamentStatus = "completed"
	TournamentPrizesDistributed TournamentStatus = "prizes_distributed"
	TournamentCancelled         TournamentStatus = "cancelled"
)

// PrizeTier keys the prize table by final rank band
type PrizeTier string

const (
	TierFirstPlace    PrizeTier = "first_place"
	TierSecondPlace   PrizeTier = "second_place"
	TierThirdPlace    PrizeTier = "third_place"
	TierTop10         PrizeTier = "top_10"
	TierParticipation PrizeTier = "participation"
)

// Prize is what a single tier pays out
type Prize struct {
	XP     int     `json:"xp"`
	Points int     `json:"points"`
	Cash   float64 `json:"cash"`
}

// TournamentDefinition describes one time-boxed competitive event
type TournamentDefinition struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Category             string              `json:"category"`
	StartTime            time.Time           `json:"start_time"`
	EndTime              time.Time           `json:"end_time"`
	RegistrationDeadline time.Time           `json:"registration_deadline"`
	ScoringMethod        ScoringMethod       `json:"scoring_method"`
	BonusMultiplier      float64             `json:"bonus_multiplier"`
	EligibleRegions      []string            `json:"eligible_regions,omitempty"`
	MinLevel             int                 `json:"min_level"`
	MaxLevel             int                 `json:"max_level"`
	Prizes               map[PrizeTier]Prize `json:"prizes"`
	Status               TournamentStatus    `json:"status"`
	IsFeatured           bool                `json:"is_featured"`
}

// CategorySpecialEvent marks tournaments whose shares earn the flat event bonus
const CategorySpecialEvent = "special_event"

// HasEventBonus reports whether shares in this tournament earn the special
// event bonus
func (t *TournamentDefinition) HasEventBonus() bool {
	return t.Category == CategorySpecialEvent || t.IsFeatured
}

// AppealStatus is the disqualification appeal sub-state
type AppealStatus string

const (
	AppealNone     AppealStatus = "none"
	AppealPending  AppealStatus = "pending"
	AppealApproved AppealStatus = "approved"
	AppealRejected AppealStatus = "rejected"
)

// BonusMultipliers are the per-category participant multipliers. Each
// component is at least 1.0; the effective multiplier is their product.
type BonusMultipliers struct {
	EarlyBird   float64 `json:"early_bird"`
	Streak      float64 `json:"streak"`
	Performance float64 `json:"performance"`
	Referral    float64 `json:"referral"`
}

// NewBonusMultipliers returns the neutral multiplier set
func NewBonusMultipliers() BonusMultipliers {
	return BonusMultipliers{EarlyBird: 1.0, Streak: 1.0, Performance: 1.0, Referral: 1.0}
}

// Total is the product of the four components
func (b BonusMultipliers) Total() float64 {
	return b.EarlyBird * b.Streak * b.Performance * b.Referral
}

// TournamentParticipant is one user's standing inside a tournament
type TournamentParticipant struct {
	TournamentID    string           `json:"tournament_id"`
	UserID          string           `json:"user_id"`
	RegisteredAt    time.Time        `json:"registered_at"`
	Score           int              `json:"score"`
	CurrentRank     int              `json:"current_rank"`
	PreviousRank    int              `json:"previous_rank"`
	StreakDays      int              `json:"streak_days"`
	Multipliers     BonusMultipliers `json:"multipliers"`
	PrizeTier       *PrizeTier       `json:"prize_tier,omitempty"`
	PrizeClaimed    bool             `json:"prize_claimed"`
	Disqualified    bool             `json:"disqualified"`
	DisqualifyCause string           `json:"disqualify_cause,omitempty"`
	Appeal          AppealStatus     `json:"appeal"`
}

// RankChange is positive when the participant moved up the board
func (p *TournamentParticipant) RankChange() int {
	if p.PreviousRank == 0 {
		return 0
	}
	return p.PreviousRank - p.CurrentRank
}

// ShareEvent is one verified share attributed to a tournament participant
type ShareEvent struct {
	ID            string    `json:"id"`
	TournamentID  string    `json:"tournament_id"`
	UserID        string    `json:"user_id"`
	AppID         string    `json:"app_id"`
	Category      string    `json:"category"`
	XPAwarded     int       `json:"xp_awarded"`
	PointsAwarded int       `json:"points_awarded"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// LeaderboardEntry is one row of a ranked leaderboard
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       string    `json:"user_id"`
	Score        int       `json:"score"`
	RankChange   int       `json:"rank_change"`
	RegisteredAt time.Time `json:"registered_at"`
}

// PrizeWinner records one credited prize during distribution
type PrizeWinner struct {
	UserID string    `json:"user_id"`
	Rank   int       `json:"rank"`
	Tier   PrizeTier `json:"tier"`
	Prize  Prize     `json:"prize"`
}

// DistributionResult summarizes an exactly-once prize distribution
type DistributionResult struct {
	TournamentID string        `json:"tournament_id"`
	Winners      []PrizeWinner `json:"winners"`
	TotalXP      int           `json:"total_xp"`
	TotalPoints  int           `json:"total_points"`
	TotalCash    float64       `json:"total_cash"`
}

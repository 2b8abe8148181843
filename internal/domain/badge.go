package domain

import "time"

// CriteriaType identifies the user metric a badge threshold is measured against
type CriteriaType string

const (
	CriteriaXPEarned          CriteriaType = "xp_earned"
	CriteriaPointsEarned      CriteriaType = "points_earned"
	CriteriaSharesCount       CriteriaType = "shares_count"
	CriteriaTournamentsWon    CriteriaType = "tournaments_won"
	CriteriaStreakDays        CriteriaType = "streak_days"
	CriteriaReferralsCount    CriteriaType = "referrals_count"
	CriteriaLevelReached      CriteriaType = "level_reached"
	CriteriaConsecutiveDays   CriteriaType = "consecutive_days"
	CriteriaCategoryDiversity CriteriaType = "category_diversity"
	CriteriaAppDiversity      CriteriaType = "app_diversity"
	CriteriaTotalPayouts      CriteriaType = "total_payouts"
	CriteriaBadgeCount        CriteriaType = "badge_count"
)

// ThresholdOperator is the comparison applied between the measured value and the threshold
type ThresholdOperator string

const (
	OpGreaterOrEqual ThresholdOperator = ">="
	OpEqual          ThresholdOperator = "=="
	OpLessOrEqual    ThresholdOperator = "<="
	OpGreater        ThresholdOperator = ">"
	OpLess           ThresholdOperator = "<"
	OpNotEqual       ThresholdOperator = "!="
)

// BadgeRarity classifies how hard a badge is to earn
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityUncommon  BadgeRarity = "uncommon"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// SeasonalWindow bounds a badge to a calendar period. Outside the window the
// badge cannot be earned.
type SeasonalWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window (inclusive bounds)
func (w SeasonalWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// BadgeDefinition is an immutable achievement definition. Definitions are
// only mutated through the admin channel; the engine treats them as values.
type BadgeDefinition struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Category           string            `json:"category"`
	CriteriaType       CriteriaType      `json:"criteria_type"`
	ThresholdValue     int               `json:"threshold_value"`
	ThresholdOperator  ThresholdOperator `json:"threshold_operator"`
	Rarity             BadgeRarity       `json:"rarity"`
	XPReward           int               `json:"xp_reward"`
	PointsReward       int               `json:"points_reward"`
	IsRepeatable       bool              `json:"is_repeatable"`
	CooldownDays       int               `json:"cooldown_days"`
	PrerequisiteBadges []string          `json:"prerequisite_badges,omitempty"`
	ExclusiveWith      []string          `json:"exclusive_with,omitempty"`
	Seasonal           *SeasonalWindow   `json:"seasonal,omitempty"`
	IsActive           bool              `json:"is_active"`
	TimesAwarded       int               `json:"times_awarded"`
}

// UserBadgeGrant records a single awarded badge
type UserBadgeGrant struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	BadgeID       string    `json:"badge_id"`
	EarnedAt      time.Time `json:"earned_at"`
	XPAwarded     int       `json:"xp_awarded"`
	PointsAwarded int       `json:"points_awarded"`
	ValueAtGrant  int       `json:"value_at_grant"`
	StreakCount   int       `json:"streak_count"`
}

// BadgeProgress is a best-effort hint of how close a user is to an unearned
// badge. It is upserted out-of-band and never gates a grant.
type BadgeProgress struct {
	UserID          string    `json:"user_id"`
	BadgeID         string    `json:"badge_id"`
	CurrentValue    int       `json:"current_value"`
	PercentComplete float64   `json:"percent_complete"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Eligibility reason codes. Negative outcomes are results, not errors.
const (
	ReasonEligible         = "eligible"
	ReasonBadgeInactive    = "badge_inactive"
	ReasonAlreadyEarned    = "already_earned"
	ReasonCooldownActive   = "cooldown_active"
	ReasonOutsideSeason    = "outside_seasonal_period"
	ReasonPrereqMissing    = "prerequisite_missing"
	ReasonExclusiveBlocked = "exclusive_conflict"
	ReasonThresholdNotMet  = "threshold_not_met"
	ReasonInvalidConfig    = "invalid_configuration"
)

// EvaluationResult is the outcome of screening one badge against a snapshot
type EvaluationResult struct {
	BadgeID         string  `json:"badge_id"`
	Eligible        bool    `json:"eligible"`
	ReasonCode      string  `json:"reason_code"`
	CurrentValue    int     `json:"current_value"`
	ProgressPercent float64 `json:"progress_percent"`
}

// GrantResult is the outcome of a committed grant
type GrantResult struct {
	Grant         *UserBadgeGrant `json:"grant"`
	XPAwarded     int             `json:"xp_awarded"`
	PointsAwarded int             `json:"points_awarded"`
	NewLevel      int             `json:"new_level"`
	LevelChanged  bool            `json:"level_changed"`
}

// BatchGrantResult aggregates a full evaluation pass over all active badges
type BatchGrantResult struct {
	Granted       []UserBadgeGrant   `json:"granted"`
	TotalXP       int                `json:"total_xp"`
	TotalPoints   int                `json:"total_points"`
	NewLevel      int                `json:"new_level"`
	LevelChanged  bool               `json:"level_changed"`
	EvaluatedEach []EvaluationResult `json:"evaluated,omitempty"`
}

package sse

// BadgeGrantedPayload represents the SSE payload for badge grant events
type BadgeGrantedPayload struct {
	UserID        string `json:"user_id"`
	BadgeID       string `json:"badge_id"`
	XPAwarded     int    `json:"xp_awarded"`
	PointsAwarded int    `json:"points_awarded"`
}

// LevelUpPayload represents the SSE payload for level change events
type LevelUpPayload struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}

// TournamentScoredPayload represents the SSE payload for live score updates
type TournamentScoredPayload struct {
	TournamentID string `json:"tournament_id"`
	UserID       string `json:"user_id"`
	NewScore     int    `json:"new_score"`
	NewRank      int    `json:"new_rank"`
}

// TournamentClosedPayload represents the SSE payload for tournament close
type TournamentClosedPayload struct {
	TournamentID string `json:"tournament_id"`
	Participants int    `json:"participants"`
}

// PrizesDistributedPayload represents the SSE payload for prize distribution
type PrizesDistributedPayload struct {
	TournamentID string  `json:"tournament_id"`
	WinnerCount  int     `json:"winner_count"`
	TotalXP      int     `json:"total_xp"`
	TotalPoints  int     `json:"total_points"`
	TotalCash    float64 `json:"total_cash"`
}

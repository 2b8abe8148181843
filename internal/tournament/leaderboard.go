package tournament

import (
	"sort"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Rank produces the leaderboard for a set of participants. Ordering is by
// score descending with earlier registration breaking ties; disqualified
// participants are excluded. Ranks follow standard competition numbering:
// equal scores share a rank, and the next distinct score resumes at its
// ordinal position (1, 1, 3). The same inputs always produce the same board.
func Rank(participants []domain.TournamentParticipant) []domain.LeaderboardEntry {
	ranked := make([]domain.TournamentParticipant, 0, len(participants))
	for _, p := range participants {
		if p.Disqualified {
			continue
		}
		ranked = append(ranked, p)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].RegisteredAt.Before(ranked[j].RegisteredAt)
	})

	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	rank := 0
	prevScore := 0
	for i, p := range ranked {
		if i == 0 || p.Score != prevScore {
			rank = i + 1
		}
		prevScore = p.Score

		change := 0
		if p.PreviousRank > 0 {
			change = p.PreviousRank - rank
		}

		entries = append(entries, domain.LeaderboardEntry{
			Rank:         rank,
			UserID:       p.UserID,
			Score:        p.Score,
			RankChange:   change,
			RegisteredAt: p.RegisteredAt,
		})
	}

	return entries
}

// rankOf returns a user's rank on a board, 0 when absent
func rankOf(entries []domain.LeaderboardEntry, userID string) int {
	for _, e := range entries {
		if e.UserID == userID {
			return e.Rank
		}
	}
	return 0
}

// tierForRank maps a final rank to the richest prize tier the tournament
// actually defines. Rank bands without a defined tier fall through to
// participation; a tournament with no matching tier pays nothing for that
// rank.
func tierForRank(t *domain.TournamentDefinition, rank int) (domain.PrizeTier, domain.Prize, bool) {
	var candidates []domain.PrizeTier
	switch {
	case rank == 1:
		candidates = []domain.PrizeTier{domain.TierFirstPlace, domain.TierTop10, domain.TierParticipation}
	case rank == 2:
		candidates = []domain.PrizeTier{domain.TierSecondPlace, domain.TierTop10, domain.TierParticipation}
	case rank == 3:
		candidates = []domain.PrizeTier{domain.TierThirdPlace, domain.TierTop10, domain.TierParticipation}
	case rank <= Top10MaxRank:
		candidates = []domain.PrizeTier{domain.TierTop10, domain.TierParticipation}
	default:
		candidates = []domain.PrizeTier{domain.TierParticipation}
	}

	for _, tier := range candidates {
		if prize, ok := t.Prizes[tier]; ok {
			return tier, prize, true
		}
	}
	return "", domain.Prize{}, false
}

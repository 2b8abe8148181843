package sse

import (
	"testing"
	"time"

	"github.com/shareboost/rewards-engine/internal/testing/leaktest"
)

func TestHub_StopReleasesGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	hub := NewHub()
	hub.Start()

	for i := 0; i < 5; i++ {
		hub.Register(nil)
	}
	hub.Broadcast(EventTypeBadgeGranted, BadgeGrantedPayload{UserID: "alice"})

	hub.Stop()

	checker.Check(1)
}

func TestHub_BroadcastChurn_NoMemoryGrowth(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	client := hub.Register(nil)

	leaktest.CheckNoMemoryLeak(t, 10, func() {
		for i := 0; i < 10000; i++ {
			hub.Broadcast(EventTypeTournamentScored, TournamentScoredPayload{
				TournamentID: "t1",
				UserID:       "alice",
				NewScore:     i,
			})
			// Drain so the client buffer never saturates
			select {
			case <-client.EventChannel:
			default:
			}
		}
		time.Sleep(50 * time.Millisecond)
	})
}

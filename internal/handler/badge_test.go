package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareboost/rewards-engine/internal/badge"
	"github.com/shareboost/rewards-engine/internal/domain"
)

// badgeServiceStub implements badge.Service with pluggable function fields
type badgeServiceStub struct {
	evaluateFn    func(ctx context.Context, userID, badgeID string) (domain.EvaluationResult, error)
	grantFn       func(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error)
	evaluateAllFn func(ctx context.Context, userID, triggerEvent string) (*domain.BatchGrantResult, error)
	progressFn    func(ctx context.Context, userID string) ([]domain.BadgeProgress, error)
	invalidated   bool
}

func (s *badgeServiceStub) EvaluateBadge(ctx context.Context, userID, badgeID string) (domain.EvaluationResult, error) {
	return s.evaluateFn(ctx, userID, badgeID)
}

func (s *badgeServiceStub) Grant(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error) {
	return s.grantFn(ctx, userID, badgeID)
}

func (s *badgeServiceStub) EvaluateAndGrantAll(ctx context.Context, userID, triggerEvent string) (*domain.BatchGrantResult, error) {
	return s.evaluateAllFn(ctx, userID, triggerEvent)
}

func (s *badgeServiceStub) GetProgress(ctx context.Context, userID string) ([]domain.BadgeProgress, error) {
	return s.progressFn(ctx, userID)
}

func (s *badgeServiceStub) InvalidateDefinitions() {
	s.invalidated = true
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleGrantBadge(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		grantFn        func(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: GrantBadgeRequest{UserID: "user-1", BadgeID: "first_share"},
			grantFn: func(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error) {
				return &badge.GrantOutcome{Granted: true, Result: &domain.GrantResult{
					Grant:     &domain.UserBadgeGrant{UserID: userID, BadgeID: badgeID},
					XPAwarded: 50,
				}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"granted":true`,
		},
		{
			name:    "Not eligible is a normal outcome",
			reqBody: GrantBadgeRequest{UserID: "user-1", BadgeID: "first_share"},
			grantFn: func(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error) {
				return &badge.GrantOutcome{Granted: false, ReasonCode: "threshold_not_met"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"reason_code":"threshold_not_met"`,
		},
		{
			name:    "Unknown badge",
			reqBody: GrantBadgeRequest{UserID: "user-1", BadgeID: "nope"},
			grantFn: func(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error) {
				return nil, domain.ErrBadgeNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgBadgeNotFoundError,
		},
		{
			name:    "Unknown user",
			reqBody: GrantBadgeRequest{UserID: "ghost", BadgeID: "first_share"},
			grantFn: func(ctx context.Context, userID, badgeID string) (*badge.GrantOutcome, error) {
				return nil, domain.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name:           "Missing fields",
			reqBody:        GrantBadgeRequest{UserID: "user-1"},
			grantFn:        nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &badgeServiceStub{grantFn: tt.grantFn}
			rec := postJSON(t, HandleGrantBadge(stub), "/api/v1/badges/grant", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGrantBadge_InvalidJSON(t *testing.T) {
	stub := &badgeServiceStub{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/badges/grant", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	HandleGrantBadge(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequest)
}

func TestHandleEvaluateAllBadges(t *testing.T) {
	stub := &badgeServiceStub{
		evaluateAllFn: func(ctx context.Context, userID, triggerEvent string) (*domain.BatchGrantResult, error) {
			return &domain.BatchGrantResult{
				Granted: []domain.UserBadgeGrant{{UserID: userID, BadgeID: "first_share"}},
				TotalXP: 50,
			}, nil
		},
	}

	rec := postJSON(t, HandleEvaluateAllBadges(stub), "/api/v1/badges/evaluate-all",
		EvaluateAllBadgesRequest{UserID: "user-1", TriggerEvent: "share_created"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"first_share"`)
}

func TestHandleBadgeProgress(t *testing.T) {
	stub := &badgeServiceStub{
		progressFn: func(ctx context.Context, userID string) ([]domain.BadgeProgress, error) {
			return []domain.BadgeProgress{{BadgeID: "sharer_10", PercentComplete: 40}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/badges/progress?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	HandleBadgeProgress(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sharer_10"`)
}

func TestHandleBadgeProgress_MissingUserID(t *testing.T) {
	stub := &badgeServiceStub{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/badges/progress", nil)
	rec := httptest.NewRecorder()
	HandleBadgeProgress(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReloadBadgeDefinitions(t *testing.T) {
	stub := &badgeServiceStub{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/badges/reload", nil)
	rec := httptest.NewRecorder()
	HandleReloadBadgeDefinitions(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.invalidated)
}

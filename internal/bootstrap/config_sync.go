package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/repository"
	"github.com/shareboost/rewards-engine/internal/validation"
)

// badgeConfigFile mirrors the on-disk badge catalog
type badgeConfigFile struct {
	Badges []domain.BadgeDefinition `json:"badges"`
}

// SyncBadgeDefinitions loads the badge catalog from a JSON config file,
// validates it against its schema and upserts every definition. The upsert
// preserves award counters, so re-running on unchanged config is harmless.
// An empty configPath skips the sync; the catalog then comes solely from
// migrations and manual edits.
func SyncBadgeDefinitions(ctx context.Context, badgeRepo repository.Badge, configPath string) error {
	if configPath == "" {
		return nil
	}

	slog.Info(LogMsgSyncingBadges, "path", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadBadgeConfig, err)
	}

	schemaPath := filepath.Join(filepath.Dir(configPath), "schemas", BadgeConfigSchemaFile)
	if err := validation.NewSchemaValidator().ValidateBytes(data, schemaPath); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidBadgeConfig, err)
	}

	var cfg badgeConfigFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadBadgeConfig, err)
	}

	for _, def := range cfg.Badges {
		if err := badgeRepo.UpsertBadgeDefinition(ctx, def); err != nil {
			return fmt.Errorf("%s %q: %w", ErrMsgFailedSyncBadge, def.ID, err)
		}
	}

	slog.Info(LogMsgBadgesSynced, "count", len(cfg.Badges))
	return nil
}

package notify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cafe/internal/models"
)

// SettingsLoader reads the singleton settings document. It returns nil, nil
// when the document does not exist.
type SettingsLoader interface {
	Load(ctx context.Context) (*models.Settings, error)
}

// Resolver turns the settings document into the list of chat ids to notify.
type Resolver struct {
	settings SettingsLoader
	log      *zap.Logger
}

func NewResolver(settings SettingsLoader, log *zap.Logger) *Resolver {
	return &Resolver{settings: settings, log: log}
}

// Resolve never fails: a missing document, an empty list and a read error
// all yield an empty result.
func (r *Resolver) Resolve(ctx context.Context) []string {
	settings, err := r.settings.Load(ctx)
	if err != nil {
		r.log.Warn("could not read notification recipients", zap.Error(err))
		return nil
	}
	if settings == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(settings.RecipientIDs))
	ids := make([]string, 0, len(settings.RecipientIDs))
	for _, raw := range settings.RecipientIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

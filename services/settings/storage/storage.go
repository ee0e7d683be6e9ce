package storage

import (
	"context"
	"sync"

	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/services/settings/entity"
)

type Storage interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) (*entity.Settings, error)
}

// memory keeps the single settings record in process. Used in tests and
// when no database DSN is configured.
type memory struct {
	mu       sync.RWMutex
	settings *entity.Settings
	uuid     gen.UUIDGenerator
}

func NewMemory() Storage {
	return &memory{
		uuid: gen.UUID(),
	}
}

func (m *memory) Get(ctx context.Context) (*entity.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, entity.ErrNotFound
	}

	copied := *m.settings
	return &copied, nil
}

func (m *memory) Save(ctx context.Context, settings *entity.Settings) (*entity.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if settings.ID == "" {
		settings.ID = m.uuid.NextString()
	}

	copied := *settings
	m.settings = &copied
	return settings, nil
}

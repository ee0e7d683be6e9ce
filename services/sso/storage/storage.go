package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/services/sso/entity"
)

type Storage interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

type memory struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
	uuid    gen.UUIDGenerator
}

func NewMemory() Storage {
	return &memory{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
		uuid:    gen.UUID(),
	}
}

func (m *memory) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := m.byEmail[email]; exists {
		return nil, entity.ErrUserExists
	}

	user.ID = m.uuid.NextString()
	user.CreatedAt = time.Now()

	copied := *user
	m.byEmail[email] = &copied
	m.byID[user.ID] = &copied

	return user, nil
}

func (m *memory) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, entity.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

func (m *memory) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byID[id]
	if !exists {
		return nil, entity.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

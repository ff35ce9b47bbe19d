package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/leadflow/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type PreferenceRepo interface {
	Get(ctx context.Context, key string) (*domain.Preference, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*domain.Preference, error)
}

type DiscoveryRepo interface {
	Create(ctx context.Context, r *domain.DiscoveryRecord) error
	GetByID(ctx context.Context, id string) (*domain.DiscoveryRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.DiscoveryRecord, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"time"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/domain"
)

type DiscoveryService interface {
	// Record stores a completed discovery and remembers it as the latest one.
	Record(ctx context.Context, c bot.Completion) (*domain.DiscoveryRecord, error)
	Get(ctx context.Context, id string) (*domain.DiscoveryRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.DiscoveryRecord, error)
	Latest(ctx context.Context) (*domain.DiscoveryRecord, error)
}

type GateService interface {
	// ShouldShow reports whether the gate has not been dismissed yet.
	ShouldShow(ctx context.Context, gate string) (bool, error)
	Dismiss(ctx context.Context, gate string) error
	// Reset clears every known gate and returns how many were set.
	Reset(ctx context.Context) (int, error)
}

type clock func() time.Time

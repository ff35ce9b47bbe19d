package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/repository"
)

type gateService struct {
	prefs    repository.PreferenceRepo
	observer UseCaseObserver
}

func NewGateService(prefs repository.PreferenceRepo, observers ...UseCaseObserver) GateService {
	return &gateService{prefs: prefs, observer: useCaseObserverOrNoop(observers)}
}

func (s *gateService) ShouldShow(ctx context.Context, gate string) (bool, error) {
	pref, err := s.prefs.Get(ctx, gate)
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !pref.Bool(), nil
}

func (s *gateService) Dismiss(ctx context.Context, gate string) error {
	return s.prefs.Set(ctx, gate, "1")
}

func (s *gateService) Reset(ctx context.Context) (n int, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset-gates",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"cleared": n},
		})
	}()

	for _, gate := range domain.Gates {
		show, err := s.ShouldShow(ctx, gate)
		if err != nil {
			return n, err
		}
		if !show {
			n++
		}
		if err := s.prefs.Delete(ctx, gate); err != nil {
			return n, err
		}
	}
	return n, nil
}

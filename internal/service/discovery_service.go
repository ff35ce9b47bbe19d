package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/google/uuid"
)

type discoveryService struct {
	discoveries repository.DiscoveryRepo
	prefs       repository.PreferenceRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
	now         clock
}

func NewDiscoveryService(
	discoveries repository.DiscoveryRepo,
	prefs repository.PreferenceRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) DiscoveryService {
	return &discoveryService{
		discoveries: discoveries,
		prefs:       prefs,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
		now:         time.Now,
	}
}

func (s *discoveryService) Record(ctx context.Context, c bot.Completion) (rec *domain.DiscoveryRecord, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{"conversation_id": c.ConversationID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-discovery",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if c.Data == nil {
		return nil, fmt.Errorf("recording discovery %s: no analysis data", c.ConversationID)
	}

	rec = &domain.DiscoveryRecord{
		ID:                uuid.NewString(),
		ConversationID:    c.ConversationID,
		Name:              c.Data.Responses.Get(analysis.KeyName),
		Email:             c.Data.Responses.Get(analysis.KeyEmail),
		Complexity:        c.Data.Complexity,
		LeadScore:         c.LeadScore,
		EstimatedEffort:   c.Data.EstimatedEffort,
		BusinessImpact:    c.Data.BusinessImpact,
		Submitted:         c.Submitted,
		SubmissionMessage: c.SubmissionMessage,
		Data:              c.Data,
		StartedAt:         c.StartedAt,
		CompletedAt:       startedAt,
		DurationSec:       int(c.Duration.Seconds()),
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.CompletedAt
	}
	fields["complexity"] = string(rec.Complexity)
	fields["submitted"] = rec.Submitted

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDiscoveryRepo(tx).Create(ctx, rec); err != nil {
			return err
		}
		return repository.NewSQLitePreferenceRepo(tx).Set(ctx, domain.PrefLastDiscoveryID, rec.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("recording discovery: %w", err)
	}
	return rec, nil
}

func (s *discoveryService) Get(ctx context.Context, id string) (*domain.DiscoveryRecord, error) {
	return s.discoveries.GetByID(ctx, id)
}

func (s *discoveryService) ListRecent(ctx context.Context, limit int) ([]*domain.DiscoveryRecord, error) {
	return s.discoveries.ListRecent(ctx, limit)
}

func (s *discoveryService) Latest(ctx context.Context) (*domain.DiscoveryRecord, error) {
	pref, err := s.prefs.Get(ctx, domain.PrefLastDiscoveryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("latest discovery: %w", repository.ErrNotFound)
		}
		return nil, err
	}
	return s.discoveries.GetByID(ctx, pref.Value)
}

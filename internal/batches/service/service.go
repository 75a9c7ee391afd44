package service

import (
	"context"
	"errors"
	"time"

	"phonenumber_backend/internal/batches/repository"
	"phonenumber_backend/internal/batches/transport"
	"phonenumber_backend/internal/events"
	"phonenumber_backend/platform/apperr"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/phone"

	"github.com/google/uuid"
)

const defaultListLimit = 20

// Enqueuer hands a stored batch to the background worker.
type Enqueuer interface {
	EnqueueBatch(ctx context.Context, batchID uuid.UUID) error
}

type Service struct {
	repo     *repository.Repository
	enqueuer Enqueuer
	bus      events.Bus
	maxSize  int
	log      *logger.Logger
}

func New(repo *repository.Repository, enqueuer Enqueuer, bus events.Bus, cfg config.BatchConfig, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		enqueuer: enqueuer,
		bus:      bus,
		maxSize:  cfg.GetBatchMaxNumbers(),
		log:      log,
	}
}

// Submit stores a batch and enqueues it. submittedBy is nil for anonymous
// callers.
func (s *Service) Submit(ctx context.Context, req transport.SubmitRequest, submittedBy *uuid.UUID) (transport.SubmitResponse, error) {
	if len(req.Numbers) > s.maxSize {
		return transport.SubmitResponse{}, apperr.Validation("too many numbers in batch").
			WithCode("batch_too_large").
			WithDetails(map[string]int{"max": s.maxSize, "got": len(req.Numbers)})
	}

	var region string
	if req.Region != "" {
		resolved, err := phone.ResolveRegion(req.Region)
		if err != nil {
			return transport.SubmitResponse{}, apperr.Wrap(apperr.KindUnprocessable, "invalid region", err).WithCode(phone.ErrorInvalidRegion.String())
		}
		region = string(resolved)
	}

	batch := repository.Batch{
		ID:          uuid.New(),
		Status:      repository.StatusPending,
		Region:      region,
		Format:      req.Format,
		Numbers:     req.Numbers,
		SubmittedBy: submittedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, batch); err != nil {
		return transport.SubmitResponse{}, err
	}

	if err := s.enqueuer.EnqueueBatch(ctx, batch.ID); err != nil {
		batch.Status = repository.StatusFailed
		batch.Error = "enqueue failed"
		if saveErr := s.repo.Save(ctx, batch); saveErr != nil {
			s.log.Error("failed to mark batch as failed", "batchId", batch.ID, "error", saveErr)
		}
		return transport.SubmitResponse{}, apperr.Wrap(apperr.KindUnavailable, "batch queue unavailable", err).WithCode("batches_unavailable")
	}

	s.bus.Publish(ctx, events.BatchSubmitted{
		BaseEvent: events.NewBaseEvent(),
		BatchID:   batch.ID.String(),
		Count:     len(batch.Numbers),
	})

	return transport.SubmitResponse{
		ID:     batch.ID.String(),
		Status: string(batch.Status),
		Count:  len(batch.Numbers),
	}, nil
}

// Get returns a batch with its per-number results.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.BatchResponse, error) {
	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BatchResponse{}, err
	}
	return toResponse(batch, true), nil
}

// List returns recent batches without their results.
func (s *Service) List(ctx context.Context, req transport.ListRequest) (transport.ListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	batches, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return transport.ListResponse{}, err
	}

	items := make([]transport.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toResponse(b, false))
	}
	return transport.ListResponse{Batches: items}, nil
}

// Process normalizes every number of a batch and stores the results.
// Completed batches are left untouched so task retries are harmless.
func (s *Service) Process(ctx context.Context, id uuid.UUID) error {
	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if batch.Status == repository.StatusCompleted {
		return nil
	}

	batch.Status = repository.StatusProcessing
	if err := s.repo.Save(ctx, batch); err != nil {
		return err
	}

	results := make([]repository.Result, 0, len(batch.Numbers))
	batch.Valid, batch.Invalid, batch.Failed = 0, 0, 0
	for _, input := range batch.Numbers {
		if err := ctx.Err(); err != nil {
			return err
		}
		result := normalize(input, batch.Region, batch.Format)
		switch {
		case result.ErrorCode != "":
			batch.Failed++
		case result.Valid:
			batch.Valid++
		default:
			batch.Invalid++
		}
		results = append(results, result)
	}

	now := time.Now().UTC()
	batch.Results = results
	batch.Status = repository.StatusCompleted
	batch.CompletedAt = &now
	if err := s.repo.Save(ctx, batch); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.BatchCompleted{
		BaseEvent: events.NewBaseEvent(),
		BatchID:   batch.ID.String(),
		Valid:     batch.Valid,
		Invalid:   batch.Invalid,
		Failed:    batch.Failed,
	})
	return nil
}

// normalize parses one entry. Valid numbers are rendered in format; an empty
// or unknown format yields the default rendering.
func normalize(input, region, format string) repository.Result {
	var (
		num phone.PhoneNumber
		err error
	)
	if region != "" {
		num, err = phone.ParseInRegion(input, region)
	} else {
		num, err = phone.Parse(input)
	}
	if err != nil {
		result := repository.Result{Input: input, ErrorCode: phone.ErrorNotANumber.String(), ErrorMessage: err.Error()}
		var parseErr *phone.ParseError
		if errors.As(err, &parseErr) {
			result.ErrorCode = parseErr.Kind.String()
			result.ErrorMessage = parseErr.Message
		}
		return result
	}

	if !num.IsValid() {
		return repository.Result{Input: input}
	}
	return repository.Result{Input: input, Valid: true, Formatted: num.Format(format)}
}

func toResponse(b repository.Batch, withResults bool) transport.BatchResponse {
	resp := transport.BatchResponse{
		ID:          b.ID.String(),
		Status:      string(b.Status),
		Region:      b.Region,
		Format:      b.Format,
		Count:       len(b.Numbers),
		Valid:       b.Valid,
		Invalid:     b.Invalid,
		Failed:      b.Failed,
		Error:       b.Error,
		CreatedAt:   b.CreatedAt,
		CompletedAt: b.CompletedAt,
	}
	if b.SubmittedBy != nil {
		by := b.SubmittedBy.String()
		resp.SubmittedBy = &by
	}
	if withResults {
		resp.Results = make([]transport.ResultResponse, 0, len(b.Results))
		for _, r := range b.Results {
			item := transport.ResultResponse{Input: r.Input, Valid: r.Valid, Formatted: r.Formatted}
			if r.ErrorCode != "" {
				item.Error = &transport.ErrorInfo{Code: r.ErrorCode, Message: r.ErrorMessage}
			}
			resp.Results = append(resp.Results, item)
		}
	}
	return resp
}

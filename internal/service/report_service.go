package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	apperrors "ketotrack/internal/errors"
	"ketotrack/internal/repository"
	"ketotrack/internal/tasks"
)

// Enqueuer is the slice of asynq.Client the report service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReportAck is what the caller observes: the task was accepted, nothing
// more. Completion is reported only through the queue's own monitoring.
type ReportAck struct {
	TaskID string `json:"task_id"`
	Queue  string `json:"queue"`
}

// ReportService validates report requests and hands them to the task queue.
type ReportService interface {
	Request(ctx context.Context, profileID uint, start, end time.Time, email string) (ReportAck, error)
}

type reportService struct {
	profiles repository.ProfileRepository
	products repository.ProductRepository
	queue    Enqueuer
}

// NewReportService creates a report service.
func NewReportService(profiles repository.ProfileRepository, products repository.ProductRepository, queue Enqueuer) ReportService {
	return &reportService{profiles: profiles, products: products, queue: queue}
}

// Request pre-checks the range and enqueues a report dispatch task. A range
// with no entries fails here, before any work is queued, mirroring what the
// generator would decide later anyway.
func (s *reportService) Request(ctx context.Context, profileID uint, start, end time.Time, email string) (ReportAck, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return ReportAck{}, apperrors.ErrInvalidDateRange
	}

	if _, err := s.profiles.FindByID(ctx, profileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportAck{}, apperrors.ErrProfileNotFound
		}
		return ReportAck{}, err
	}

	exists, err := s.products.ExistsInRange(ctx, profileID, start, end)
	if err != nil {
		return ReportAck{}, fmt.Errorf("check entries: %w", err)
	}
	if !exists {
		return ReportAck{}, apperrors.ErrNoEntries
	}

	task, err := tasks.NewReportDispatchTask(profileID, start, end, email)
	if err != nil {
		return ReportAck{}, err
	}

	info, err := s.queue.EnqueueContext(ctx, task)
	if err != nil {
		return ReportAck{}, fmt.Errorf("%w: %v", apperrors.ErrTaskEnqueue, err)
	}
	return ReportAck{TaskID: info.ID, Queue: info.Queue}, nil
}

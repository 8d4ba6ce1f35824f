package service

import (
	"context"
	"time"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/internal/repository"
	"github.com/Astemirdum/ebook-service/pkg/kafka"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LateFeePerDay is the flat penalty charged for every whole day past due.
const LateFeePerDay = 8

type BorrowService struct {
	log      *zap.Logger
	repo     repository.BorrowRepository
	enqueuer Enqueuer

	// now and newTrackingCode are swappable in tests
	now             func() time.Time
	newTrackingCode func() string
}

type BorrowOption func(*BorrowService)

// WithClock pins "today" for date validation and fee computation.
func WithClock(now func() time.Time) BorrowOption {
	return func(s *BorrowService) {
		s.now = now
	}
}

func WithTrackingCodeGen(gen func() string) BorrowOption {
	return func(s *BorrowService) {
		s.newTrackingCode = gen
	}
}

func NewBorrowService(repo repository.BorrowRepository, enqueuer Enqueuer, log *zap.Logger, ops ...BorrowOption) *BorrowService {
	s := &BorrowService{
		log:             log,
		repo:            repo,
		enqueuer:        enqueuer,
		now:             time.Now,
		newTrackingCode: uuid.NewString,
	}
	for _, op := range ops {
		op(s)
	}
	return s
}

func (s *BorrowService) Borrow(ctx context.Context, bookID string, req model.BorrowRequest) (model.BorrowRecord, model.Book, error) {
	today := dateOnly(s.now())
	due := dateOnly(req.DueDate.Time)

	if !due.After(today) {
		return model.BorrowRecord{}, model.Book{}, errs.ErrDueDate
	}

	rec := model.BorrowRecord{
		StudentID:    req.StudentID,
		TrackingCode: s.newTrackingCode(),
		BorrowDate:   model.Date{Time: today},
		DueDate:      model.Date{Time: due},
	}
	created, book, err := s.repo.Borrow(ctx, bookID, rec)
	if err != nil {
		return model.BorrowRecord{}, model.Book{}, err
	}

	s.publish(model.BorrowEvent{
		TrackingCode: created.TrackingCode,
		EventType:    model.EventBorrow,
		BookID:       book.BookID,
		StudentID:    created.StudentID,
		EventDate:    created.BorrowDate,
	})
	return created, book, nil
}

func (s *BorrowService) Return(ctx context.Context, bookID string) (model.BorrowRecord, model.Book, error) {
	today := dateOnly(s.now())

	rec, book, err := s.repo.Return(ctx, bookID, today, LateFeePerDay)
	if err != nil {
		if errors.Is(err, errs.ErrNoActiveRecord) {
			// the flag and the records disagree: surface, never patch silently
			s.log.Error("borrow state inconsistency",
				zap.String("bookId", bookID), zap.Error(err))
		}
		return model.BorrowRecord{}, model.Book{}, err
	}

	s.publish(model.BorrowEvent{
		TrackingCode: rec.TrackingCode,
		EventType:    model.EventReturn,
		BookID:       book.BookID,
		StudentID:    rec.StudentID,
		EventDate:    model.Date{Time: today},
	})
	return rec, book, nil
}

func (s *BorrowService) ListRecords(ctx context.Context, bookID string) ([]model.BorrowRecord, error) {
	return s.repo.ListRecords(ctx, bookID)
}

// publish is best-effort: the borrow is already committed, a lost stats
// event must not fail the request.
func (s *BorrowService) publish(ev model.BorrowEvent) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.Enqueue(kafka.BorrowEventsTopic, ev); err != nil {
		s.log.Warn("enqueue borrow event",
			zap.String("trackingCode", ev.TrackingCode), zap.Error(err))
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

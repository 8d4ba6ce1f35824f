package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/ebook-service/internal/model"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type statsRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewStatsRepository(db *sqlx.DB, log *zap.Logger) (*statsRepository, error) {
	return &statsRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

// InsertEvent is idempotent: consumption is at-least-once and re-delivered
// events hit the (tracking_code, event_type) unique key.
func (r *statsRepository) InsertEvent(ctx context.Context, ev model.BorrowEvent) error {
	q, args, err := qb.Insert(borrowEventTableName).
		Columns("tracking_code", "event_type", "book_id", "student_id", "event_date").
		Values(ev.TrackingCode, ev.EventType, ev.BookID, ev.StudentID, ev.EventDate.Format(time.DateOnly)).
		Suffix("on conflict (tracking_code, event_type) do nothing").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("InsertEvent", zap.String("q", q), zap.Any("args", args))
		return err
	}
	return nil
}

func (r *statsRepository) ListEvents(ctx context.Context, bookID string) ([]model.BorrowEventRow, error) {
	q, args, err := qb.Select("id", "tracking_code", "event_type", "book_id", "student_id", "event_date", "created_at").
		From(borrowEventTableName).
		Where(sq.Eq{"book_id": bookID}).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var events []model.BorrowEventRow
	if err := r.db.SelectContext(ctx, &events, q, args...); err != nil {
		return nil, err
	}
	return events, nil
}

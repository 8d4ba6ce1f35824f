package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type borrowRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBorrowRepository(db *sqlx.DB, log *zap.Logger) (*borrowRepository, error) {
	return &borrowRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

// Borrow runs the active-record check and the insert as one transaction.
// The book row is locked first, so two concurrent borrowers serialize here;
// the partial unique index on borrow_record is the backstop.
func (r *borrowRepository) Borrow(ctx context.Context, bookID string, rec model.BorrowRecord) (model.BorrowRecord, model.Book, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, model.Book{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var book model.Book
	if err := tx.GetContext(ctx, &book,
		`select * from book where book_id = $1 for update`, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRecord{}, model.Book{}, errs.ErrNotFound
		}
		return model.BorrowRecord{}, model.Book{}, err
	}

	var active bool
	if err := tx.QueryRowContext(ctx,
		`select exists(select 1 from borrow_record where book_id = $1 and actual_return_date is null)`,
		book.ID).Scan(&active); err != nil {
		return model.BorrowRecord{}, model.Book{}, err
	}
	if active {
		return model.BorrowRecord{}, model.Book{}, errs.ErrAlreadyBorrowed
	}

	q, args, err := qb.Insert(borrowRecordTableName).
		Columns("student_id", "book_id", "tracking_code", "borrow_date", "due_date").
		Values(rec.StudentID, book.ID, rec.TrackingCode,
			rec.BorrowDate.Format(time.DateOnly), rec.DueDate.Format(time.DateOnly)).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.BorrowRecord{}, model.Book{}, err
	}
	var created model.BorrowRecord
	if err := tx.GetContext(ctx, &created, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.BorrowRecord{}, model.Book{}, errs.ErrAlreadyBorrowed
		}
		r.log.Error("Borrow insert", zap.String("q", q), zap.Any("args", args))
		return model.BorrowRecord{}, model.Book{}, err
	}

	if err := tx.GetContext(ctx, &book,
		`update book set is_borrowed = true, borrow_count = borrow_count + 1
		 where id = $1 returning *`, book.ID); err != nil {
		return model.BorrowRecord{}, model.Book{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, model.Book{}, errors.Wrap(err, "commit")
	}
	return created, book, nil
}

// Return closes the active record and flips the book flag in one transaction.
// borrow_count is a historical counter and stays as is.
func (r *borrowRepository) Return(ctx context.Context, bookID string, returnDate time.Time, feePerDay float64) (model.BorrowRecord, model.Book, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, model.Book{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var book model.Book
	if err := tx.GetContext(ctx, &book,
		`select * from book where book_id = $1 for update`, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRecord{}, model.Book{}, errs.ErrNotFound
		}
		return model.BorrowRecord{}, model.Book{}, err
	}
	if !book.IsBorrowed {
		return model.BorrowRecord{}, model.Book{}, errs.ErrNotBorrowed
	}

	var rec model.BorrowRecord
	if err := tx.GetContext(ctx, &rec,
		`select * from borrow_record where book_id = $1 and actual_return_date is null limit 1`,
		book.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// is_borrowed says otherwise: invariant violation, surface it
			return model.BorrowRecord{}, model.Book{}, errs.ErrNoActiveRecord
		}
		return model.BorrowRecord{}, model.Book{}, err
	}

	fee := LateFee(rec.DueDate.Time, returnDate, feePerDay)

	if err := tx.GetContext(ctx, &rec,
		`update borrow_record set actual_return_date = $2, late_fee = $3
		 where id = $1 returning *`,
		rec.ID, returnDate.Format(time.DateOnly), fee); err != nil {
		return model.BorrowRecord{}, model.Book{}, err
	}

	if err := tx.GetContext(ctx, &book,
		`update book set is_borrowed = false where id = $1 returning *`, book.ID); err != nil {
		return model.BorrowRecord{}, model.Book{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, model.Book{}, errors.Wrap(err, "commit")
	}
	return rec, book, nil
}

func (r *borrowRepository) ListRecords(ctx context.Context, bookID string) ([]model.BorrowRecord, error) {
	q, args, err := qb.Select("r.id", "r.student_id", "r.book_id", "r.tracking_code",
		"r.borrow_date", "r.due_date", "r.actual_return_date", "r.late_fee").
		From(borrowRecordTableName + " r").
		Join(bookTableName + " b on b.id = r.book_id").
		Where(sq.Eq{"b.book_id": bookID}).
		OrderBy("r.id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var recs []model.BorrowRecord
	if err := r.db.SelectContext(ctx, &recs, q, args...); err != nil {
		return nil, err
	}
	return recs, nil
}

// LateFee charges perDay for every whole day the return exceeds the due
// date, both taken date-only. On-time returns cost nothing.
func LateFee(due, ret time.Time, perDay float64) float64 {
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	ret = time.Date(ret.Year(), ret.Month(), ret.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ret.Sub(due) / (24 * time.Hour))
	if days <= 0 {
		return 0
	}
	return float64(days) * perDay
}

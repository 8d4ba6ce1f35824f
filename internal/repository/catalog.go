package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type catalogRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewCatalogRepository(db *sqlx.DB, log *zap.Logger) (*catalogRepository, error) {
	return &catalogRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

var bookColumns = []string{
	"id", "book_id", "title", "subtitle", "author", "publisher", "description",
	"category", "image", "rating", "borrow_count", "book_pdf", "book_audio", "is_borrowed",
}

func (r *catalogRepository) Create(ctx context.Context, book model.Book) (model.Book, error) {
	q, args, err := qb.Insert(bookTableName).
		Columns("book_id", "title", "subtitle", "author", "publisher", "description",
			"category", "image", "rating", "book_pdf", "book_audio").
		Values(book.BookID, book.Title, book.Subtitle, book.Author, book.Publisher, book.Description,
			book.Category, book.Image, book.Rating, book.BookPdf, book.BookAudio).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return created, nil
}

// Update never touches book_id, borrow_count or is_borrowed.
func (r *catalogRepository) Update(ctx context.Context, bookID string, book model.Book) (model.Book, error) {
	q, args, err := qb.Update(bookTableName).
		Set("title", book.Title).
		Set("subtitle", book.Subtitle).
		Set("author", book.Author).
		Set("publisher", book.Publisher).
		Set("description", book.Description).
		Set("category", book.Category).
		Set("image", book.Image).
		Set("rating", book.Rating).
		Set("book_pdf", book.BookPdf).
		Set("book_audio", book.BookAudio).
		Where(sq.Eq{"book_id": bookID}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("Update", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return updated, nil
}

func (r *catalogRepository) Delete(ctx context.Context, bookID string) error {
	q, args, err := qb.Delete(bookTableName).
		Where(sq.Eq{"book_id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) Get(ctx context.Context, bookID string) (model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(bookTableName).
		Where(sq.Eq{"book_id": bookID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *catalogRepository) ListByCategory(ctx context.Context, category model.Category) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(bookTableName).
		Where(sq.Eq{"category": category}).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *catalogRepository) RankByRating(ctx context.Context) ([]model.Book, error) {
	return r.ranked(ctx, "rating")
}

func (r *catalogRepository) RankByBorrowCount(ctx context.Context) ([]model.Book, error) {
	return r.ranked(ctx, "borrow_count")
}

// ranked orders descending by the given column, insertion order on ties.
func (r *catalogRepository) ranked(ctx context.Context, column string) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(bookTableName).
		OrderBy(fmt.Sprintf("%s desc", column), "id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// Search matches books whose title contains every token, case-insensitive.
func (r *catalogRepository) Search(ctx context.Context, tokens []string) ([]model.Book, error) {
	q := qb.Select(bookColumns...).
		From(bookTableName).
		OrderBy("id asc")

	for _, token := range tokens {
		q = q.Where(sq.ILike{"title": "%" + token + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("Search", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

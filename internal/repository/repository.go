package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/ebook-service/internal/model"

	sq "github.com/Masterminds/squirrel"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

const (
	bookTableName         = `book`
	borrowRecordTableName = `borrow_record`
	usersTableName        = `users`
	borrowEventTableName  = `borrow_event`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type CatalogRepository interface {
	Create(ctx context.Context, book model.Book) (model.Book, error)
	Update(ctx context.Context, bookID string, book model.Book) (model.Book, error)
	Delete(ctx context.Context, bookID string) error
	Get(ctx context.Context, bookID string) (model.Book, error)
	ListByCategory(ctx context.Context, category model.Category) ([]model.Book, error)
	RankByRating(ctx context.Context) ([]model.Book, error)
	RankByBorrowCount(ctx context.Context) ([]model.Book, error)
	Search(ctx context.Context, tokens []string) ([]model.Book, error)
}

type BorrowRepository interface {
	Borrow(ctx context.Context, bookID string, rec model.BorrowRecord) (model.BorrowRecord, model.Book, error)
	Return(ctx context.Context, bookID string, returnDate time.Time, feePerDay float64) (model.BorrowRecord, model.Book, error)
	ListRecords(ctx context.Context, bookID string) ([]model.BorrowRecord, error)
}

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	Get(ctx context.Context, username string) (model.User, error)
}

type StatsRepository interface {
	InsertEvent(ctx context.Context, ev model.BorrowEvent) error
	ListEvents(ctx context.Context, bookID string) ([]model.BorrowEventRow, error)
}

package handler

import (
	"context"

	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CatalogService = (*service.CatalogService)(nil)
	_ BorrowService  = (*service.BorrowService)(nil)
	_ AuthService    = (*service.AuthService)(nil)
	_ StatsService   = (*service.StatsService)(nil)
)

type CatalogService interface {
	CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookID string, req model.BookCreateRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookID string) error
	GetBook(ctx context.Context, bookID string) (model.Book, error)
	Home(ctx context.Context) (model.HomeResponse, error)
	Search(ctx context.Context, query string) (model.SearchResponse, error)
}

type BorrowService interface {
	Borrow(ctx context.Context, bookID string, req model.BorrowRequest) (model.BorrowRecord, model.Book, error)
	Return(ctx context.Context, bookID string) (model.BorrowRecord, model.Book, error)
	ListRecords(ctx context.Context, bookID string) ([]model.BorrowRecord, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
}

type StatsService interface {
	RecordEvent(ctx context.Context, ev model.BorrowEvent) error
	ListEvents(ctx context.Context, bookID string) ([]model.BorrowEventRow, error)
}

package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/ebook-service/internal/media"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const bookIDPrefix = "BOOK-"

type CatalogService struct {
	log   *zap.Logger
	repo  repository.CatalogRepository
	media *media.Store

	// newBookID is swappable in tests
	newBookID func() string
}

type CatalogOption func(*CatalogService)

func WithBookIDGen(gen func() string) CatalogOption {
	return func(s *CatalogService) {
		s.newBookID = gen
	}
}

func NewCatalogService(repo repository.CatalogRepository, store *media.Store, log *zap.Logger, ops ...CatalogOption) *CatalogService {
	s := &CatalogService{
		log:       log,
		repo:      repo,
		media:     store,
		newBookID: NewBookID,
	}
	for _, op := range ops {
		op(s)
	}
	return s
}

// NewBookID builds a catalog id: the fixed prefix plus six random hex chars, uppercased.
func NewBookID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return bookIDPrefix + strings.ToUpper(suffix)
}

func (s *CatalogService) CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error) {
	return s.repo.Create(ctx, bookFromRequest(req, s.newBookID()))
}

func (s *CatalogService) UpdateBook(ctx context.Context, bookID string, req model.BookCreateRequest) (model.Book, error) {
	return s.repo.Update(ctx, bookID, bookFromRequest(req, bookID))
}

// DeleteBook removes the stored attachments first, then the row; borrow
// records go with it via the FK cascade.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	book, err := s.repo.Get(ctx, bookID)
	if err != nil {
		return err
	}
	for _, path := range []string{book.Image, book.BookPdf.String, book.BookAudio.String} {
		if err := s.media.Remove(path); err != nil {
			s.log.Warn("attachment cleanup", zap.String("bookId", bookID), zap.Error(err))
		}
	}
	return s.repo.Delete(ctx, bookID)
}

func (s *CatalogService) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	return s.repo.Get(ctx, bookID)
}

// Home aggregates the category shelves and both rankings concurrently.
func (s *CatalogService) Home(ctx context.Context) (model.HomeResponse, error) {
	var resp model.HomeResponse
	gg, ctx := errgroup.WithContext(ctx)

	fetch := func(category model.Category, dst *[]model.Book) func() error {
		return func() error {
			books, err := s.repo.ListByCategory(ctx, category)
			if err != nil {
				return err
			}
			*dst = books
			return nil
		}
	}
	gg.Go(fetch(model.CategoryEducation, &resp.EduBooks))
	gg.Go(fetch(model.CategoryFiction, &resp.FictionBooks))
	gg.Go(fetch(model.CategoryScience, &resp.ScienceBooks))
	gg.Go(fetch(model.CategoryNonFiction, &resp.NonFictionBooks))
	gg.Go(func() error {
		books, err := s.repo.RankByRating(ctx)
		if err != nil {
			return err
		}
		resp.TopRated = books
		return nil
	})
	gg.Go(func() error {
		books, err := s.repo.RankByBorrowCount(ctx)
		if err != nil {
			return err
		}
		resp.MostBorrowed = books
		return nil
	})

	if err := gg.Wait(); err != nil {
		return model.HomeResponse{}, err
	}
	return resp, nil
}

// Search splits the query on whitespace; every token must appear in the
// title. An empty query returns the whole catalog.
func (s *CatalogService) Search(ctx context.Context, query string) (model.SearchResponse, error) {
	books, err := s.repo.Search(ctx, strings.Fields(query))
	if err != nil {
		return model.SearchResponse{}, err
	}
	return model.SearchResponse{Query: query, Books: books}, nil
}

func bookFromRequest(req model.BookCreateRequest, bookID string) model.Book {
	return model.Book{
		BookID:      bookID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Rating:      req.Rating,
		BookPdf:     model.NewNullString(req.BookPdf),
		BookAudio:   model.NewNullString(req.BookAudio),
	}
}

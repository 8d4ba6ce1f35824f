package service_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/media"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	repo_mocks "github.com/Astemirdum/ebook-service/internal/repository/mocks"
)

func TestNewBookID(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`^BOOK-[0-9A-F]{6}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := service.NewBookID()
		require.Regexp(t, re, id)
		seen[id] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}

func TestCatalogService_Search(t *testing.T) {
	t.Parallel()

	all := []model.Book{
		{BookID: "BOOK-000001", Title: "Python Programming"},
		{BookID: "BOOK-000002", Title: "Advanced Python"},
		{BookID: "BOOK-000003", Title: "JavaScript Basics"},
	}

	tests := []struct {
		name       string
		query      string
		wantTokens []string
		result     []model.Book
	}{
		{
			name:       "two tokens AND-combined",
			query:      "Advanced Python",
			wantTokens: []string{"Advanced", "Python"},
			result:     all[1:2],
		},
		{
			name:       "single token",
			query:      "Python",
			wantTokens: []string{"Python"},
			result:     all[:2],
		},
		{
			name:       "empty query returns everything",
			query:      "",
			wantTokens: []string{},
			result:     all,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockCatalogRepository(c)
			repo.EXPECT().
				Search(context.Background(), tt.wantTokens).
				Return(tt.result, nil)

			svc := service.NewCatalogService(repo, nil, zap.NewNop())

			resp, err := svc.Search(context.Background(), tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.query, resp.Query)
			require.Equal(t, tt.result, resp.Books)
		})
	}
}

func TestCatalogService_DeleteBook(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	root := t.TempDir()
	store, err := media.NewStore(root, zap.NewNop())
	require.NoError(t, err)

	image := filepath.Join("books", "cover.png")
	pdf := filepath.Join("pdfs", "book.pdf")
	for _, rel := range []string{image, pdf} {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("data"), 0o644))
	}

	repo := repo_mocks.NewMockCatalogRepository(c)
	repo.EXPECT().
		Get(context.Background(), "BOOK-1A2B3C").
		Return(model.Book{
			BookID:  "BOOK-1A2B3C",
			Image:   image,
			BookPdf: model.NewNullString(pdf),
		}, nil)
	repo.EXPECT().
		Delete(context.Background(), "BOOK-1A2B3C").
		Return(nil)

	svc := service.NewCatalogService(repo, store, zap.NewNop())
	require.NoError(t, svc.DeleteBook(context.Background(), "BOOK-1A2B3C"))

	require.NoFileExists(t, filepath.Join(root, image))
	require.NoFileExists(t, filepath.Join(root, pdf))
}

func TestCatalogService_DeleteBook_NotFound(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockCatalogRepository(c)
	repo.EXPECT().
		Get(context.Background(), "BOOK-MISSING").
		Return(model.Book{}, errs.ErrNotFound)

	svc := service.NewCatalogService(repo, nil, zap.NewNop())
	require.ErrorIs(t, svc.DeleteBook(context.Background(), "BOOK-MISSING"), errs.ErrNotFound)
}

func TestCatalogService_Home(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	edu := []model.Book{{BookID: "BOOK-ED0001", Title: "Algebra", Category: model.CategoryEducation}}
	fiction := []model.Book{{BookID: "BOOK-F10001", Title: "Dune", Category: model.CategoryFiction}}
	ranked := []model.Book{
		{BookID: "BOOK-F10001", Rating: 5},
		{BookID: "BOOK-ED0001", Rating: 3},
	}

	repo := repo_mocks.NewMockCatalogRepository(c)
	repo.EXPECT().ListByCategory(gomock.Any(), model.CategoryEducation).Return(edu, nil)
	repo.EXPECT().ListByCategory(gomock.Any(), model.CategoryFiction).Return(fiction, nil)
	repo.EXPECT().ListByCategory(gomock.Any(), model.CategoryScience).Return(nil, nil)
	repo.EXPECT().ListByCategory(gomock.Any(), model.CategoryNonFiction).Return(nil, nil)
	repo.EXPECT().RankByRating(gomock.Any()).Return(ranked, nil)
	repo.EXPECT().RankByBorrowCount(gomock.Any()).Return(ranked, nil)

	svc := service.NewCatalogService(repo, nil, zap.NewNop())

	resp, err := svc.Home(context.Background())
	require.NoError(t, err)
	require.Equal(t, edu, resp.EduBooks)
	require.Equal(t, fiction, resp.FictionBooks)
	require.Empty(t, resp.ScienceBooks)
	require.Equal(t, ranked, resp.TopRated)
	require.Equal(t, ranked, resp.MostBorrowed)
}

func TestCatalogService_CreateBook(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockCatalogRepository(c)
	repo.EXPECT().
		Create(context.Background(), model.Book{
			BookID:      "BOOK-AB12CD",
			Title:       "Advanced Python",
			Subtitle:    "A deep dive",
			Author:      "J. Doe",
			Description: "desc",
			Category:    model.CategoryEducation,
			Image:       "books/cover.png",
			Rating:      4,
		}).
		DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
			b.ID = 1
			return b, nil
		})

	svc := service.NewCatalogService(repo, nil, zap.NewNop(),
		service.WithBookIDGen(func() string { return "BOOK-AB12CD" }))

	book, err := svc.CreateBook(context.Background(), model.BookCreateRequest{
		Title:       "Advanced Python",
		Subtitle:    "A deep dive",
		Author:      "J. Doe",
		Description: "desc",
		Category:    model.CategoryEducation,
		Image:       "books/cover.png",
		Rating:      4,
	})
	require.NoError(t, err)
	require.Equal(t, "BOOK-AB12CD", book.BookID)
	require.Zero(t, book.BorrowCount)
	require.False(t, book.IsBorrowed)
}

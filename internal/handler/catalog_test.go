package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/handler"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/ebook-service/internal/handler/mocks"
)

func newCatalogTestServer(t *testing.T) (*service_mocks.MockCatalogService, *echo.Echo) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockCatalogService(c)
	h := handler.New(svc, nil, nil, nil, nil, zap.NewNop())

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/books", h.Home)
	e.GET("/books/search", h.SearchBooks)
	e.GET("/books/:bookId", h.GetBook)
	e.POST("/books", h.AddBook)
	e.PUT("/books/:bookId", h.EditBook)
	e.DELETE("/books/:bookId", h.DeleteBook)
	return svc, e
}

func TestHandler_GetBook(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, e := newCatalogTestServer(t)
		svc.EXPECT().
			GetBook(context.Background(), "BOOK-1A2B3C").
			Return(model.Book{
				BookID:   "BOOK-1A2B3C",
				Title:    "Dune",
				Author:   "Frank Herbert",
				Category: model.CategoryFiction,
				Rating:   5,
			}, nil)

		r := httptest.NewRequest(http.MethodGet, "/books/BOOK-1A2B3C", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t,
			`{"bookId":"BOOK-1A2B3C","title":"Dune","subtitle":"","author":"Frank Herbert","publisher":"","description":"","category":"Fiction","image":"","rating":5,"borrowCount":0,"bookPdf":null,"bookAudio":null,"isBorrowed":false}`,
			strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc, e := newCatalogTestServer(t)
		svc.EXPECT().
			GetBook(context.Background(), "BOOK-FFFFFF").
			Return(model.Book{}, errs.ErrNotFound)

		r := httptest.NewRequest(http.MethodGet, "/books/BOOK-FFFFFF", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_SearchBooks(t *testing.T) {
	t.Parallel()
	svc, e := newCatalogTestServer(t)
	svc.EXPECT().
		Search(context.Background(), "advanced python").
		Return(model.SearchResponse{Query: "advanced python", Books: []model.Book{}}, nil)

	// surrounding whitespace is trimmed before the service sees the query
	r := httptest.NewRequest(http.MethodGet, "/books/search?q=+advanced+python+", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"query":"advanced python","books":[]}`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_AddBook(t *testing.T) {
	t.Parallel()

	body := `{"title":"Dune","subtitle":"A desert planet","author":"Frank Herbert","description":"Spice","category":"Fiction","image":"books/dune.png","rating":5}`
	want := model.BookCreateRequest{
		Title:       "Dune",
		Subtitle:    "A desert planet",
		Author:      "Frank Herbert",
		Description: "Spice",
		Category:    model.CategoryFiction,
		Image:       "books/dune.png",
		Rating:      5,
	}

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		svc, e := newCatalogTestServer(t)
		svc.EXPECT().
			CreateBook(context.Background(), want).
			Return(model.Book{BookID: "BOOK-1A2B3C", Title: "Dune"}, nil)

		r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		_, e := newCatalogTestServer(t)

		r := httptest.NewRequest(http.MethodPost, "/books",
			strings.NewReader(`{"title":"Dune","subtitle":"s","author":"a","description":"d","category":"Horror","image":"i"}`))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal", func(t *testing.T) {
		t.Parallel()
		svc, e := newCatalogTestServer(t)
		svc.EXPECT().
			CreateBook(context.Background(), want).
			Return(model.Book{}, errors.New("db internal"))

		r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, `{"message":"db internal"}`, strings.Trim(w.Body.String(), "\n"))
	})
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()

	t.Run("no content", func(t *testing.T) {
		t.Parallel()
		svc, e := newCatalogTestServer(t)
		svc.EXPECT().
			DeleteBook(context.Background(), "BOOK-1A2B3C").
			Return(nil)

		r := httptest.NewRequest(http.MethodDelete, "/books/BOOK-1A2B3C", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc, e := newCatalogTestServer(t)
		svc.EXPECT().
			DeleteBook(context.Background(), "BOOK-FFFFFF").
			Return(errs.ErrNotFound)

		r := httptest.NewRequest(http.MethodDelete, "/books/BOOK-FFFFFF", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

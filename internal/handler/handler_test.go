package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/ebook-service/internal/handler"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/Astemirdum/ebook-service/pkg/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/ebook-service/internal/handler/mocks"
)

func signToken(t *testing.T, username string, superuser bool, ttl time.Duration) string {
	t.Helper()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	claims.Profile.Username = username
	claims.Profile.IsSuperuser = superuser

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.JWTKey)
	require.NoError(t, err)
	return s
}

func TestRouter_AccessControl(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name         string
		token        string
		deleteCalled bool
		expectedCode int
	}{
		{
			name:         "no token",
			token:        "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "garbage token",
			token:        "not-a-jwt",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "regular user",
			token:        signToken(t, "bob", false, time.Hour),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "superuser",
			token:        signToken(t, "root", true, time.Hour),
			deleteCalled: true,
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "admin by name",
			token:        signToken(t, "admin", false, time.Hour),
			deleteCalled: true,
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "expired superuser token",
			token:        signToken(t, "root", true, -time.Hour),
			expectedCode: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			catalogSvc := service_mocks.NewMockCatalogService(c)
			if tt.deleteCalled {
				catalogSvc.EXPECT().
					DeleteBook(gomock.Any(), "BOOK-1A2B3C").
					Return(nil)
			}
			h := handler.New(catalogSvc, nil, nil, nil, nil, zap.NewNop())
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodDelete, "/api/v1/books/BOOK-1A2B3C", http.NoBody)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRouter_BorrowRequiresAuth(t *testing.T) {
	t.Parallel()

	t.Run("anonymous is rejected", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		h := handler.New(nil, service_mocks.NewMockBorrowService(c), nil, nil, nil, zap.NewNop())
		e := h.NewRouter()

		r := httptest.NewRequest(http.MethodPost, "/api/v1/books/BOOK-1A2B3C/borrow", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("any signed-in user may borrow", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		borrowSvc := service_mocks.NewMockBorrowService(c)
		borrowSvc.EXPECT().
			Borrow(gomock.Any(), "BOOK-1A2B3C", gomock.Any()).
			Return(model.BorrowRecord{}, model.Book{}, nil)
		h := handler.New(nil, borrowSvc, nil, nil, nil, zap.NewNop())
		e := h.NewRouter()

		r := httptest.NewRequest(http.MethodPost, "/api/v1/books/BOOK-1A2B3C/borrow",
			strings.NewReader(`{"studentId":"x123456","dueDate":"2026-12-01"}`))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+signToken(t, "bob", false, time.Hour))
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
	})
}

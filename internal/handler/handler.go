package handler

import (
	"net/http"

	md "github.com/Astemirdum/ebook-service/pkg/middleware"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/media"
	"github.com/Astemirdum/ebook-service/pkg/auth"
	"github.com/Astemirdum/ebook-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const adminUserName = "admin"

type Handler struct {
	catalogSvc CatalogService
	borrowSvc  BorrowService
	authSvc    AuthService
	statsSvc   StatsService
	media      *media.Store
	log        *zap.Logger
}

func New(catalogSvc CatalogService, borrowSvc BorrowService, authSvc AuthService, statsSvc StatsService, store *media.Store, log *zap.Logger) *Handler {
	h := &Handler{
		catalogSvc: catalogSvc,
		borrowSvc:  borrowSvc,
		authSvc:    authSvc,
		statsSvc:   statsSvc,
		media:      store,
		log:        log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout, md.JwtAuthentication)

	api.GET("/books", h.Home)
	api.GET("/books/search", h.SearchBooks)
	api.GET("/books/:bookId", h.GetBook)

	admin := api.Group("", md.JwtAuthentication, adminOnly)
	admin.POST("/books", h.AddBook)
	admin.PUT("/books/:bookId", h.EditBook)
	admin.DELETE("/books/:bookId", h.DeleteBook)
	admin.GET("/books/:bookId/records", h.ListRecords)
	admin.GET("/books/:bookId/events", h.ListEvents)

	user := api.Group("", md.JwtAuthentication)
	user.POST("/books/:bookId/borrow", h.BorrowBook)
	user.POST("/books/:bookId/return", h.ReturnBook)

	return e
}

// adminOnly allows superusers and the literal "admin" account.
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		username, err := auth.UserName(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		if !auth.IsSuperuser(ctx) && username != adminUserName {
			return echo.NewHTTPError(http.StatusForbidden, errs.ErrNotAuthorized.Error())
		}
		return next(c)
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Astemirdum/ebook-service/internal/errs"
	"github.com/Astemirdum/ebook-service/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func (h *Handler) Home(c echo.Context) error {
	resp, err := h.catalogSvc.Home(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) SearchBooks(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	resp, err := h.catalogSvc.Search(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookID := c.Param("bookId")
	book, err := h.catalogSvc.GetBook(c.Request().Context(), bookID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) AddBook(c echo.Context) error {
	req, err := h.bindBookRequest(c)
	if err != nil {
		return err
	}
	book, err := h.catalogSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) EditBook(c echo.Context) error {
	bookID := c.Param("bookId")
	req, err := h.bindBookRequest(c)
	if err != nil {
		return err
	}
	book, err := h.catalogSvc.UpdateBook(c.Request().Context(), bookID, req)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	bookID := c.Param("bookId")
	if err := h.catalogSvc.DeleteBook(c.Request().Context(), bookID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// bindBookRequest accepts either a JSON body with attachment paths or a
// multipart form carrying the files themselves.
func (h *Handler) bindBookRequest(c echo.Context) (model.BookCreateRequest, error) {
	var req model.BookCreateRequest

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := h.bindMultipart(c, &req); err != nil {
			return model.BookCreateRequest{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	} else if err := c.Bind(&req); err != nil {
		return model.BookCreateRequest{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return model.BookCreateRequest{}, err
	}
	return req, nil
}

func (h *Handler) bindMultipart(c echo.Context, req *model.BookCreateRequest) error {
	req.Title = c.FormValue("title")
	req.Subtitle = c.FormValue("subtitle")
	req.Author = c.FormValue("author")
	req.Publisher = c.FormValue("publisher")
	req.Description = c.FormValue("description")
	req.Category = model.Category(c.FormValue("category"))
	if rating := c.FormValue("rating"); rating != "" {
		n, err := strconv.Atoi(rating)
		if err != nil {
			return errors.New("rating is invalid")
		}
		req.Rating = n
	}

	files := []struct {
		field string
		dir   string
		dst   *string
	}{
		{"image", "books", &req.Image},
		{"bookPdf", "pdfs", &req.BookPdf},
		{"bookAudio", "audio", &req.BookAudio},
	}
	for _, f := range files {
		fh, err := c.FormFile(f.field)
		if err != nil {
			continue // optional fields stay empty, validation decides
		}
		src, err := fh.Open()
		if err != nil {
			return err
		}
		path, err := h.media.Save(f.dir, fh.Filename, src)
		src.Close()
		if err != nil {
			return err
		}
		*f.dst = path
	}
	return nil
}

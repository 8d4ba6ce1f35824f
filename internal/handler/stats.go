package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListEvents returns the persisted stats feed for a book.
func (h *Handler) ListEvents(c echo.Context) error {
	bookID := c.Param("bookId")
	events, err := h.statsSvc.ListEvents(c.Request().Context(), bookID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

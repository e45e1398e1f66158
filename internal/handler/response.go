package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire shape of every response: {ok:true, data} on success,
// {ok:false, error} on failure.
type Envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// OK writes a success envelope with the given status
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{OK: true, Data: data})
}

// NewValidationError writes a 400 envelope naming the failed constraint
func NewValidationError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, Envelope{OK: false, Error: detail})
}

// NewNotFoundError writes a 404 envelope. Absent records and records owned
// by other users get the identical body.
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, Envelope{OK: false, Error: detail})
}

// NewUnauthorizedError writes a 401 envelope
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, Envelope{OK: false, Error: detail})
}

// NewInternalError writes a 500 envelope
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, Envelope{OK: false, Error: detail})
}

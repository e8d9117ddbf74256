package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper; the HTTP status line always
// matches Status.
type Envelope struct {
	Status  int         `json:"status"`
	Errors  *string     `json:"errors"`
	Results interface{} `json:"results"`
}

func respond(ctx echo.Context, results interface{}) error {
	return ctx.JSON(http.StatusOK, Envelope{Status: http.StatusOK, Results: results})
}

func respondError(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, Envelope{Status: code, Errors: &msg})
}

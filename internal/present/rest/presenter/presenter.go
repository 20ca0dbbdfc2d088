package presenter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mudasir256/helplineapp/internal/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   int  `json:"count"`
}

type dataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK wraps a successful response without the envelope.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// List wraps a collection in the {success, data, count} envelope the mobile
// client expects.
func List(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, listResponse{Success: true, Data: data, Count: count})
}

// Data wraps a single resource in the {success, data} envelope.
func Data(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: payload})
}

// Message reports a successful mutation with no resource body.
func Message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, dataResponse{Success: true, Message: msg})
}

func BadRequest(c echo.Context, err error) error {
	fmt.Println("Bad request:", err)
	return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	fmt.Println("Bad request:", msg)
	return c.JSON(http.StatusBadRequest, errorResponse{Message: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Message: msg})
}

func InternalError(c echo.Context, err error) error {
	fmt.Println("Internal error:", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: err.Error()})
}

// Error maps a domain error onto the matching status code. Unknown errors
// are internal.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Message: err.Error()})
	}
	return InternalError(c, err)
}

package delivery

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketcore/domain"
)

const msgSuccess = "success"

type JsonResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// StatusOf maps an error to the http status of its kind, fallback is used for unknown errors
func StatusOf(err error, fallback int) int {
	var verr validator.ValidationErrors
	var herr *echo.HTTPError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &herr):
		return herr.Code
	}
	return fallback
}

// MakeJsonResp writes the {success, message, data} envelope. An error as data
// becomes the message and decides the status by its kind.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			msg = domain.ErrInternalServerError.Error()
		}
		return c.JSON(status, JsonResponse{Success: false, Message: msg})
	}

	if status >= 400 {
		msg, _ := data.(string)
		return c.JSON(status, JsonResponse{Success: false, Message: msg})
	}

	return c.JSON(status, JsonResponse{Success: true, Message: msgSuccess, Data: data})
}

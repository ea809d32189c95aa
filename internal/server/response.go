package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the unified API envelope.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the machine-readable error code alongside the detail
// text, e.g. code "SHOP_NOT_FOUND".
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// respondOK writes a success envelope.
func respondOK(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: "Success",
		Data:    data,
	})
}

// respondError writes an error envelope.
func respondError(c echo.Context, statusCode int, errorCode, details string) error {
	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: http.StatusText(statusCode),
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

func badRequest(c echo.Context, errorCode, details string) error {
	return respondError(c, http.StatusBadRequest, errorCode, details)
}

func notFound(c echo.Context, errorCode, details string) error {
	return respondError(c, http.StatusNotFound, errorCode, details)
}

func conflict(c echo.Context, errorCode, details string) error {
	return respondError(c, http.StatusConflict, errorCode, details)
}

func internalError(c echo.Context, errorCode, details string) error {
	return respondError(c, http.StatusInternalServerError, errorCode, details)
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avulnerador/shop-master/internal/settings"
)

func (h *HTTP) getSettings(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Settings.Current())
}

func (h *HTTP) patchSettings(c echo.Context) error {
	var patch settings.Patch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid settings payload")
	}
	updated, err := h.deps.Settings.Update(c.Request().Context(), patch)
	if err != nil {
		return badRequest(c, "VALIDATION_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, updated)
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HTTP) listShops(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Archive.All())
}

func (h *HTTP) listShopsGrouped(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Archive.GroupByLocation())
}

// saveShop archives the current shop. There is no body: the archive always
// snapshots exactly what the session holds.
func (h *HTTP) saveShop(c echo.Context) error {
	current, ok := h.deps.Session.Current()
	if !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	if err := h.deps.Archive.Save(c.Request().Context(), current); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusCreated, current)
}

func (h *HTTP) loadShop(c echo.Context) error {
	loaded, ok := h.deps.Archive.LoadShop(c.Param("id"))
	if !ok {
		return notFound(c, "SHOP_NOT_FOUND", "no archived shop with id "+c.Param("id"))
	}
	return respondOK(c, http.StatusOK, loaded)
}

func (h *HTTP) deleteShop(c echo.Context) error {
	if err := h.deps.Archive.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, nil)
}

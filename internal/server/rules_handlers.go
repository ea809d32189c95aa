package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/export"
)

// taxonomyFromParam maps the URL segment to a taxonomy.
func taxonomyFromParam(name string) (catalog.Taxonomy, bool) {
	switch name {
	case "shop-types":
		return catalog.ShopTypes, true
	case "item-types":
		return catalog.ItemTypes, true
	case "systems":
		return catalog.Systems, true
	case "rarities":
		return catalog.Rarities, true
	default:
		return 0, false
	}
}

func (h *HTTP) listRules(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Catalog.AllRules())
}

type addTagRequest struct {
	Tag string `json:"tag"`
}

func (h *HTTP) addTag(c echo.Context) error {
	tax, ok := taxonomyFromParam(c.Param("taxonomy"))
	if !ok {
		return notFound(c, "TAXONOMY_NOT_FOUND", "unknown taxonomy "+c.Param("taxonomy"))
	}
	var req addTagRequest
	if err := c.Bind(&req); err != nil || req.Tag == "" {
		return badRequest(c, "INVALID_INPUT", "tag must not be empty")
	}
	if err := h.deps.Catalog.AddTag(c.Request().Context(), tax, req.Tag); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusCreated, h.deps.Catalog.Tags(tax))
}

func (h *HTTP) deleteTag(c echo.Context) error {
	tax, ok := taxonomyFromParam(c.Param("taxonomy"))
	if !ok {
		return notFound(c, "TAXONOMY_NOT_FOUND", "unknown taxonomy "+c.Param("taxonomy"))
	}
	if err := h.deps.Catalog.DeleteTag(c.Request().Context(), tax, c.Param("tag")); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, h.deps.Catalog.Tags(tax))
}

func (h *HTTP) exportRules(c echo.Context) error {
	data, err := export.MarshalCollection(h.deps.Catalog.AllRules())
	if err != nil {
		return internalError(c, "ENCODE_ERROR", err.Error())
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (h *HTTP) importRules(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "INVALID_INPUT", "unreadable request body")
	}
	rules, err := export.DecodeRules(body)
	if err != nil {
		return badRequest(c, "MALFORMED_IMPORT", err.Error())
	}
	if err := h.deps.Catalog.ImportRules(c.Request().Context(), rules); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, h.deps.Catalog.AllRules())
}

package server

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/export"
)

// Catalog CRUD and bulk import/export. Create mints the id server-side;
// update takes the id from the path so the body cannot retarget another
// record.

func (h *HTTP) listItems(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Catalog.Items())
}

func (h *HTTP) createItem(c echo.Context) error {
	var item catalog.Item
	if err := c.Bind(&item); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid item payload")
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := item.Validate(); err != nil {
		return badRequest(c, "VALIDATION_ERROR", err.Error())
	}
	if err := h.deps.Catalog.AddItem(c.Request().Context(), item); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusCreated, item)
}

func (h *HTTP) updateItem(c echo.Context) error {
	var item catalog.Item
	if err := c.Bind(&item); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid item payload")
	}
	item.ID = c.Param("id")
	if err := item.Validate(); err != nil {
		return badRequest(c, "VALIDATION_ERROR", err.Error())
	}
	if _, found := h.deps.Catalog.FindItem(item.ID); !found {
		return notFound(c, "ITEM_NOT_FOUND", "no item with id "+item.ID)
	}
	if err := h.deps.Catalog.UpdateItem(c.Request().Context(), item); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, item)
}

func (h *HTTP) deleteItem(c echo.Context) error {
	if err := h.deps.Catalog.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, nil)
}

func (h *HTTP) exportItems(c echo.Context) error {
	data, err := export.MarshalCollection(h.deps.Catalog.Items())
	if err != nil {
		return internalError(c, "ENCODE_ERROR", err.Error())
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (h *HTTP) importItems(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "INVALID_INPUT", "unreadable request body")
	}
	items, err := export.DecodeItems(body)
	if err != nil {
		return badRequest(c, "MALFORMED_IMPORT", err.Error())
	}
	if err := h.deps.Catalog.ImportItems(c.Request().Context(), items); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, h.deps.Catalog.Items())
}

func (h *HTTP) listNPCs(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Catalog.NPCs())
}

func (h *HTTP) createNPC(c echo.Context) error {
	var npc catalog.NPC
	if err := c.Bind(&npc); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid NPC payload")
	}
	if npc.ID == "" {
		npc.ID = uuid.NewString()
	}
	if npc.Name == "" {
		return badRequest(c, "VALIDATION_ERROR", "NPC name must not be empty")
	}
	if err := h.deps.Catalog.AddNPC(c.Request().Context(), npc); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusCreated, npc)
}

func (h *HTTP) updateNPC(c echo.Context) error {
	var npc catalog.NPC
	if err := c.Bind(&npc); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid NPC payload")
	}
	npc.ID = c.Param("id")
	if npc.Name == "" {
		return badRequest(c, "VALIDATION_ERROR", "NPC name must not be empty")
	}
	if _, found := h.deps.Catalog.FindNPC(npc.ID); !found {
		return notFound(c, "NPC_NOT_FOUND", "no NPC with id "+npc.ID)
	}
	if err := h.deps.Catalog.UpdateNPC(c.Request().Context(), npc); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, npc)
}

func (h *HTTP) deleteNPC(c echo.Context) error {
	if err := h.deps.Catalog.DeleteNPC(c.Request().Context(), c.Param("id")); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, nil)
}

func (h *HTTP) exportNPCs(c echo.Context) error {
	data, err := export.MarshalCollection(h.deps.Catalog.NPCs())
	if err != nil {
		return internalError(c, "ENCODE_ERROR", err.Error())
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (h *HTTP) importNPCs(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "INVALID_INPUT", "unreadable request body")
	}
	npcs, err := export.DecodeNPCs(body)
	if err != nil {
		return badRequest(c, "MALFORMED_IMPORT", err.Error())
	}
	if err := h.deps.Catalog.ImportNPCs(c.Request().Context(), npcs); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, h.deps.Catalog.NPCs())
}

func (h *HTTP) listCities(c echo.Context) error {
	return respondOK(c, http.StatusOK, h.deps.Catalog.Cities())
}

func (h *HTTP) createCity(c echo.Context) error {
	var city catalog.City
	if err := c.Bind(&city); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid city payload")
	}
	if city.ID == "" {
		city.ID = uuid.NewString()
	}
	if city.Name == "" {
		return badRequest(c, "VALIDATION_ERROR", "city name must not be empty")
	}
	if err := h.deps.Catalog.AddCity(c.Request().Context(), city); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusCreated, city)
}

func (h *HTTP) updateCity(c echo.Context) error {
	var city catalog.City
	if err := c.Bind(&city); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid city payload")
	}
	city.ID = c.Param("id")
	if city.Name == "" {
		return badRequest(c, "VALIDATION_ERROR", "city name must not be empty")
	}
	if err := h.deps.Catalog.UpdateCity(c.Request().Context(), city); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, city)
}

func (h *HTTP) deleteCity(c echo.Context) error {
	if err := h.deps.Catalog.DeleteCity(c.Request().Context(), c.Param("id")); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, nil)
}

func (h *HTTP) exportCities(c echo.Context) error {
	data, err := export.MarshalCollection(h.deps.Catalog.Cities())
	if err != nil {
		return internalError(c, "ENCODE_ERROR", err.Error())
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (h *HTTP) importCities(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "INVALID_INPUT", "unreadable request body")
	}
	cities, err := export.DecodeCities(body)
	if err != nil {
		return badRequest(c, "MALFORMED_IMPORT", err.Error())
	}
	if err := h.deps.Catalog.ImportCities(c.Request().Context(), cities); err != nil {
		return internalError(c, "STORE_ERROR", err.Error())
	}
	return respondOK(c, http.StatusOK, h.deps.Catalog.Cities())
}

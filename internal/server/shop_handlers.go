package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/export"
	"github.com/avulnerador/shop-master/internal/generate"
	"github.com/avulnerador/shop-master/internal/shop"
)

// generateRequest is the wire shape of a generation run. The literal
// "random" (or an absent field) requests a synthesized keeper / sampled
// city; any other value is a catalog NPC id / verbatim location label.
type generateRequest struct {
	ShopTypes []string `json:"shopTypes"`
	Systems   []string `json:"systems"`
	MinItems  int      `json:"minItems"`
	MaxItems  int      `json:"maxItems"`
	NPCID     string   `json:"npcId"`
	Location  string   `json:"location"`
}

// randomSentinel is the wire value clients send to request random keeper
// or location resolution.
const randomSentinel = "random"

func npcSelectorFor(id string) generate.NPCSelector {
	if id == "" || id == randomSentinel {
		return generate.RandomNPC()
	}
	return generate.SpecificNPC(id)
}

func locationSelectorFor(name string) generate.LocationSelector {
	if name == "" || name == randomSentinel {
		return generate.RandomLocation()
	}
	return generate.NamedLocation(name)
}

func (h *HTTP) generateShop(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid generation payload")
	}

	engineReq := generate.Request{
		ShopTypes: req.ShopTypes,
		Systems:   req.Systems,
		MinItems:  req.MinItems,
		MaxItems:  req.MaxItems,
		NPC:       npcSelectorFor(req.NPCID),
		Location:  locationSelectorFor(req.Location),
	}

	generated, err := h.deps.Engine.Generate(engineReq, h.deps.Catalog.Snapshot())
	if err != nil {
		return badRequest(c, "VALIDATION_ERROR", err.Error())
	}

	// Generating replaces the current shop; unsaved edits are discarded.
	h.deps.Session.SetCurrent(generated)
	return respondOK(c, http.StatusCreated, generated)
}

func (h *HTTP) getCurrentShop(c echo.Context) error {
	current, ok := h.deps.Session.Current()
	if !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	return respondOK(c, http.StatusOK, current)
}

func (h *HTTP) clearCurrentShop(c echo.Context) error {
	h.deps.Session.Clear()
	return respondOK(c, http.StatusOK, nil)
}

type shopPatchRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (h *HTTP) patchCurrentShop(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var req shopPatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid shop payload")
	}
	if req.Name != nil {
		h.deps.Session.Rename(*req.Name)
	}
	if req.Location != nil {
		h.deps.Session.SetLocation(*req.Location)
	}
	return h.respondCurrent(c)
}

// applyShopNPC overwrites the keeper with a catalog NPC by id, or with the
// literal NPC in the body when no id is given.
type applyNPCRequest struct {
	NPCID string       `json:"npcId,omitempty"`
	NPC   *catalog.NPC `json:"npc,omitempty"`
}

func (h *HTTP) applyShopNPC(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var req applyNPCRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid NPC payload")
	}
	switch {
	case req.NPCID != "":
		npc, found := h.deps.Catalog.FindNPC(req.NPCID)
		if !found {
			return notFound(c, "NPC_NOT_FOUND", "no NPC with id "+req.NPCID)
		}
		h.deps.Session.ApplyNPC(npc)
	case req.NPC != nil:
		h.deps.Session.ApplyNPC(*req.NPC)
	default:
		return badRequest(c, "INVALID_INPUT", "either npcId or npc must be provided")
	}
	return h.respondCurrent(c)
}

func (h *HTTP) patchShopNPC(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var patch shop.NPCPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid NPC patch")
	}
	h.deps.Session.PatchNPC(patch)
	return h.respondCurrent(c)
}

// addShopItem copies a catalog item into the inventory, either by catalog
// id or as a literal item in the body.
type addItemRequest struct {
	ItemID string        `json:"itemId,omitempty"`
	Item   *catalog.Item `json:"item,omitempty"`
}

func (h *HTTP) addShopItem(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid item payload")
	}

	var item catalog.Item
	switch {
	case req.ItemID != "":
		found, ok := h.deps.Catalog.FindItem(req.ItemID)
		if !ok {
			return notFound(c, "ITEM_NOT_FOUND", "no item with id "+req.ItemID)
		}
		item = found
	case req.Item != nil:
		item = *req.Item
	default:
		return badRequest(c, "INVALID_INPUT", "either itemId or item must be provided")
	}

	instanceID, err := h.deps.Session.AddItem(item)
	if err != nil {
		if errors.Is(err, shop.ErrInventoryFull) {
			return conflict(c, "INVENTORY_FULL", err.Error())
		}
		return internalError(c, "SESSION_ERROR", err.Error())
	}
	current, _ := h.deps.Session.Current()
	return respondOK(c, http.StatusCreated, map[string]any{
		"instanceId": instanceID,
		"shop":       current,
	})
}

func (h *HTTP) updateShopItem(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var patch shop.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid item patch")
	}
	h.deps.Session.UpdateItem(c.Param("id"), patch)
	return h.respondCurrent(c)
}

func (h *HTTP) removeShopItem(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	h.deps.Session.RemoveItem(c.Param("id"))
	return h.respondCurrent(c)
}

// shopSettingsPatch is the wire shape for per-shop setting tweaks.
type shopSettingsPatch struct {
	PriceModifier     *float64           `json:"priceModifier,omitempty"`
	CategoryModifiers map[string]float64 `json:"categoryModifiers,omitempty"`
	AllowBarter       *bool              `json:"allowBarter,omitempty"`
	FlavorText        *string            `json:"flavorText,omitempty"`
}

func (h *HTTP) patchShopSettings(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var patch shopSettingsPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid settings patch")
	}
	if patch.PriceModifier != nil {
		h.deps.Session.SetPriceModifier(*patch.PriceModifier)
	}
	for category, mod := range patch.CategoryModifiers {
		h.deps.Session.SetCategoryModifier(category, mod)
	}
	if patch.AllowBarter != nil {
		h.deps.Session.SetAllowBarter(*patch.AllowBarter)
	}
	if patch.FlavorText != nil {
		h.deps.Session.SetFlavorText(*patch.FlavorText)
	}
	return h.respondCurrent(c)
}

func (h *HTTP) setShopAppearance(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	var appearance shop.Appearance
	if err := c.Bind(&appearance); err != nil {
		return badRequest(c, "INVALID_INPUT", "invalid appearance payload")
	}
	h.deps.Session.SetAppearance(appearance)
	return h.respondCurrent(c)
}

func (h *HTTP) clearShopAppearance(c echo.Context) error {
	if _, ok := h.deps.Session.Current(); !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	h.deps.Session.ClearAppearance()
	return h.respondCurrent(c)
}

func (h *HTTP) enrichShop(c echo.Context) error {
	current, ok := h.deps.Session.Current()
	if !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	if h.deps.Describer == nil {
		return respondError(c, http.StatusServiceUnavailable, "ENRICH_DISABLED",
			"flavor enrichment is not configured")
	}
	flavor, err := h.deps.Describer.Describe(c.Request().Context(), current)
	if err != nil {
		// Enrichment is best-effort: keep the existing flavor line.
		h.logger.Warn("flavor enrichment failed", zap.Error(err))
		return h.respondCurrent(c)
	}
	h.deps.Session.SetFlavorText(flavor)
	return h.respondCurrent(c)
}

func (h *HTTP) exportFoundry(c echo.Context) error {
	current, ok := h.deps.Session.Current()
	if !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	actor := export.ToFoundry(current)
	data, err := export.MarshalCollection(actor)
	if err != nil {
		return internalError(c, "ENCODE_ERROR", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.FileName(current)+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (h *HTTP) respondCurrent(c echo.Context) error {
	current, ok := h.deps.Session.Current()
	if !ok {
		return notFound(c, "NO_CURRENT_SHOP", "no shop is currently loaded")
	}
	return respondOK(c, http.StatusOK, current)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/config"
	"github.com/avulnerador/shop-master/internal/generate"
	"github.com/avulnerador/shop-master/internal/settings"
	"github.com/avulnerador/shop-master/internal/shop"
)

// Describer rewrites a shop's flavor line. Implementations may call out to
// an external model; the HTTP layer treats any failure as "keep what we
// have".
type Describer interface {
	Describe(ctx context.Context, s shop.Shop) (string, error)
}

// Deps bundles everything the HTTP surface exposes.
type Deps struct {
	Catalog  *catalog.Store
	Settings *settings.Store
	Engine   *generate.Engine
	Session  *shop.Session
	Archive  *shop.Archive
	// Describer is optional; nil disables the enrich endpoint.
	Describer Describer
}

// HTTP is the JSON API server backing the local browser UI.
type HTTP struct {
	cfg    config.ServerConfig
	logger *zap.Logger
	echo   *echo.Echo
	deps   Deps
}

// NewHTTP builds the echo server and registers every route.
//
// Precondition: logger and all non-optional Deps fields must be non-nil.
func NewHTTP(cfg config.ServerConfig, logger *zap.Logger, deps Deps) *HTTP {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger(logger))

	h := &HTTP{
		cfg:    cfg,
		logger: logger,
		echo:   e,
		deps:   deps,
	}
	h.registerRoutes()
	return h
}

func (h *HTTP) registerRoutes() {
	e := h.echo
	e.GET("/health", h.health)

	api := e.Group("/api")

	items := api.Group("/items")
	items.GET("", h.listItems)
	items.POST("", h.createItem)
	items.PUT("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)
	items.GET("/export", h.exportItems)
	items.POST("/import", h.importItems)

	npcs := api.Group("/npcs")
	npcs.GET("", h.listNPCs)
	npcs.POST("", h.createNPC)
	npcs.PUT("/:id", h.updateNPC)
	npcs.DELETE("/:id", h.deleteNPC)
	npcs.GET("/export", h.exportNPCs)
	npcs.POST("/import", h.importNPCs)

	cities := api.Group("/cities")
	cities.GET("", h.listCities)
	cities.POST("", h.createCity)
	cities.PUT("/:id", h.updateCity)
	cities.DELETE("/:id", h.deleteCity)
	cities.GET("/export", h.exportCities)
	cities.POST("/import", h.importCities)

	rules := api.Group("/rules")
	rules.GET("", h.listRules)
	rules.POST("/:taxonomy/tags", h.addTag)
	rules.DELETE("/:taxonomy/tags/:tag", h.deleteTag)
	rules.GET("/export", h.exportRules)
	rules.POST("/import", h.importRules)

	api.GET("/settings", h.getSettings)
	api.PATCH("/settings", h.patchSettings)

	api.POST("/generate", h.generateShop)

	current := api.Group("/shop")
	current.GET("", h.getCurrentShop)
	current.DELETE("", h.clearCurrentShop)
	current.PATCH("", h.patchCurrentShop)
	current.PUT("/npc", h.applyShopNPC)
	current.PATCH("/npc", h.patchShopNPC)
	current.POST("/items", h.addShopItem)
	current.PATCH("/items/:id", h.updateShopItem)
	current.DELETE("/items/:id", h.removeShopItem)
	current.PATCH("/settings", h.patchShopSettings)
	current.PUT("/appearance", h.setShopAppearance)
	current.DELETE("/appearance", h.clearShopAppearance)
	current.POST("/enrich", h.enrichShop)
	current.GET("/export/foundry", h.exportFoundry)

	shops := api.Group("/shops")
	shops.GET("", h.listShops)
	shops.GET("/grouped", h.listShopsGrouped)
	shops.POST("", h.saveShop)
	shops.POST("/:id/load", h.loadShop)
	shops.DELETE("/:id", h.deleteShop)
}

func (h *HTTP) health(c echo.Context) error {
	return respondOK(c, http.StatusOK, map[string]string{"status": "ok"})
}

// Start blocks serving HTTP until Stop is called.
func (h *HTTP) Start() error {
	hostPort := net.JoinHostPort(h.cfg.Host, strconv.Itoa(h.cfg.Port))
	h.logger.Info("starting HTTP server", zap.String("addr", hostPort))
	if err := h.echo.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully within the configured timeout.
func (h *HTTP) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.ShutdownTimeout)
	defer cancel()
	if err := h.echo.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown", zap.Error(err))
	}
}

// Handler exposes the router for httptest-based tests.
func (h *HTTP) Handler() *echo.Echo {
	return h.echo
}

package generate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/rng"
	"github.com/avulnerador/shop-master/internal/shop"
)

// Item count bounds accepted from callers.
const (
	MinItemBound = 1
	MaxItemBound = 50
)

// Request describes one generation run.
type Request struct {
	// ShopTypes is the non-empty set of selected archetypes.
	ShopTypes []string
	// Systems is the non-empty set of selected game-system tags.
	Systems []string
	// MinItems and MaxItems bound the target inventory size, both in
	// [1, 50] with MinItems <= MaxItems.
	MinItems int
	MaxItems int
	NPC      NPCSelector
	Location LocationSelector
}

// Validate checks the caller preconditions of the public generation
// surface.
//
// Postcondition: returns nil iff the request is generatable.
func (r Request) Validate() error {
	var errs []error
	if len(r.ShopTypes) == 0 {
		errs = append(errs, errors.New("at least one shop type must be selected"))
	}
	if len(r.Systems) == 0 {
		errs = append(errs, errors.New("at least one system must be selected"))
	}
	if r.MinItems < MinItemBound || r.MinItems > MaxItemBound {
		errs = append(errs, fmt.Errorf("min items must be in [%d, %d], got %d", MinItemBound, MaxItemBound, r.MinItems))
	}
	if r.MaxItems < MinItemBound || r.MaxItems > MaxItemBound {
		errs = append(errs, fmt.Errorf("max items must be in [%d, %d], got %d", MinItemBound, MaxItemBound, r.MaxItems))
	}
	if r.MinItems > r.MaxItems {
		errs = append(errs, fmt.Errorf("min items (%d) must not exceed max items (%d)", r.MinItems, r.MaxItems))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid generation request: %v", errs)
	}
	return nil
}

// Engine produces Shop values from catalog snapshots. All randomness
// flows through the injected Source; the clock and id minter are
// injectable for the same reason.
type Engine struct {
	src   rng.Source
	now   func() time.Time
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the avatar-seed clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDMinter overrides the inventory/shop id minter.
func WithIDMinter(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine drawing randomness from src.
//
// Precondition: src must be non-nil.
func NewEngine(src rng.Source, opts ...Option) *Engine {
	e := &Engine{
		src:   src,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate assembles a new Shop from the catalog snapshot.
//
// Precondition: req must pass Validate; snap is a detached snapshot the
// engine may read freely.
// Postcondition: on success the Shop carries a fresh id, an owned keeper
// copy, and an inventory of owned item copies whose ids are distinct from
// each other and from their catalog sources. Empty catalogs, missing NPC
// ids, and empty city lists never produce an error; every missing-data
// path degrades to a defined fallback.
func (e *Engine) Generate(req Request, snap catalog.Dataset) (shop.Shop, error) {
	if err := req.Validate(); err != nil {
		return shop.Shop{}, err
	}

	pool := filterBySystem(snap.Items, req.Systems)
	relevant := filterByArchetype(pool, req.ShopTypes)

	// Never generate an empty shop while compatible stock exists: an
	// archetype filter that matched nothing falls back to the whole
	// system pool.
	samplePool := relevant
	if len(samplePool) == 0 {
		samplePool = pool
	}

	inventory := e.sampleInventory(samplePool, req.MinItems, req.MaxItems)
	keeper := e.resolveNPC(req.NPC, snap.NPCs)
	location := e.resolveLocation(req.Location, snap.Cities)

	label := "Emporium"
	if len(req.ShopTypes) == 1 {
		label = req.ShopTypes[0]
	}

	categoryModifiers := make(map[string]float64, len(snap.ItemTypes))
	for _, t := range snap.ItemTypes {
		categoryModifiers[t] = 1.0
	}

	return shop.Shop{
		ID:        e.newID(),
		Name:      fmt.Sprintf("%s's %s", keeper.Name, label),
		Type:      strings.Join(req.ShopTypes, " & "),
		Location:  location,
		NPC:       keeper,
		Inventory: inventory,
		Settings: shop.Settings{
			PriceModifier:     1.0,
			CategoryModifiers: categoryModifiers,
			AllowBarter:       rng.CoinFlip(e.src),
			FlavorText:        rng.Pick(e.src, flavorTexts),
		},
		SystemFilter: append([]string(nil), req.Systems...),
	}, nil
}

// filterBySystem keeps items whose system tag is in the selected set.
func filterBySystem(items []catalog.Item, systems []string) []catalog.Item {
	selected := make(map[string]bool, len(systems))
	for _, s := range systems {
		selected[s] = true
	}
	var out []catalog.Item
	for _, i := range items {
		if selected[i.System] {
			out = append(out, i)
		}
	}
	return out
}

// filterByArchetype keeps items plausible for at least one selected shop
// type. Selecting the General wildcard keeps everything.
func filterByArchetype(items []catalog.Item, shopTypes []string) []catalog.Item {
	for _, t := range shopTypes {
		if t == GeneralShopType {
			return items
		}
	}
	var out []catalog.Item
	for _, i := range items {
		for _, t := range shopTypes {
			if stocksType(t, i.Type) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// sampleInventory draws a uniform target count in [min, max] (defensively
// re-clamped) and samples that many items uniformly with replacement,
// re-identifying every copy.
func (e *Engine) sampleInventory(pool []catalog.Item, minItems, maxItems int) []catalog.Item {
	effectiveMin := max(0, minItems)
	effectiveMax := max(effectiveMin, maxItems)
	count := rng.IntBetween(e.src, effectiveMin, effectiveMax)

	if len(pool) == 0 || count == 0 {
		return nil
	}
	out := make([]catalog.Item, 0, count)
	for i := 0; i < count; i++ {
		picked := rng.Pick(e.src, pool)
		picked.ID = e.newID()
		out = append(out, picked)
	}
	return out
}

// resolveNPC implements the keeper precedence: a found catalog NPC is
// copied whole (id included); a specific-but-missing id degrades to the
// Unknown placeholder; a random request synthesizes a keeper from the
// fixed pools with a clock-seeded avatar.
func (e *Engine) resolveNPC(sel NPCSelector, npcs []catalog.NPC) catalog.NPC {
	if !sel.Random() {
		for _, n := range npcs {
			if n.ID == sel.ID() {
				return n
			}
		}
		return catalog.NPC{
			Name:        unknownLabel,
			Race:        unknownLabel,
			Personality: unknownLabel,
		}
	}
	return catalog.NPC{
		Name:        rng.Pick(e.src, npcNames),
		Race:        rng.Pick(e.src, npcRaces),
		Personality: rng.Pick(e.src, npcTraits),
		Description: generatedNPCDescription,
		AvatarURL:   fmt.Sprintf(avatarURLPattern, e.now().UnixMilli()),
	}
}

// resolveLocation uses a supplied label verbatim, otherwise samples a
// city, otherwise falls back to the Unknown label.
func (e *Engine) resolveLocation(sel LocationSelector, cities []catalog.City) string {
	if !sel.Random() {
		return sel.Name()
	}
	if len(cities) == 0 {
		return unknownLabel
	}
	return rng.Pick(e.src, cities).Name
}

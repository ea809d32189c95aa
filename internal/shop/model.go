// Package shop holds the Shop value produced by the generation engine,
// the read-time pricing formula, the single-shop editing session, and the
// saved-shop archive.
package shop

import (
	"github.com/avulnerador/shop-master/internal/catalog"
)

// MaxInventory is the hard cap on inventory entries per shop.
const MaxInventory = 50

// Settings holds the per-shop pricing and flavor knobs. Modifiers are
// applied at read time by FinalPrice, never baked into item prices.
type Settings struct {
	// PriceModifier is the global multiplier; 1.0 means no change.
	PriceModifier float64 `json:"priceModifier"`
	// CategoryModifiers maps an item-type tag to a multiplier. Tags absent
	// from the map default to 1.0.
	CategoryModifiers map[string]float64 `json:"categoryModifiers"`
	AllowBarter       bool               `json:"allowBarter"`
	FlavorText        string             `json:"flavorText"`
}

// Appearance holds up to five override colors. Absent fields fall back to
// global settings or hard-coded defaults at render time; a nil Appearance
// on the Shop means "use defaults everywhere".
type Appearance struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Background string `json:"background,omitempty"`
	Surface    string `json:"surface,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Shop is one generated (and possibly hand-edited) shop. The NPC and
// every inventory entry are owned copies: catalog edits never reach a
// shop that already took its copy, and vice versa.
type Shop struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	// Type holds all selected archetypes joined with " & ".
	Type      string      `json:"type"`
	Location  string      `json:"location,omitempty"`
	NPC       catalog.NPC `json:"npc"`
	// Inventory order is insertion order and is display-significant.
	Inventory  []catalog.Item `json:"inventory"`
	Settings   Settings       `json:"settings"`
	Appearance *Appearance    `json:"appearance,omitempty"`
	// SystemFilter records the system tags the shop was generated under;
	// it scopes later "add item" searches to compatible stock.
	SystemFilter []string `json:"systemFilter"`
}

// Clone returns a deep copy of the shop.
//
// Postcondition: no pointer, slice, or map is shared with the receiver.
func (s Shop) Clone() Shop {
	out := s
	out.Inventory = append([]catalog.Item(nil), s.Inventory...)
	out.SystemFilter = append([]string(nil), s.SystemFilter...)
	out.Settings.CategoryModifiers = make(map[string]float64, len(s.Settings.CategoryModifiers))
	for k, v := range s.Settings.CategoryModifiers {
		out.Settings.CategoryModifiers[k] = v
	}
	if s.Appearance != nil {
		appearance := *s.Appearance
		out.Appearance = &appearance
	}
	return out
}

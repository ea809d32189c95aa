// Package export produces and consumes the external JSON shapes: the
// Foundry VTT actor document and the raw catalog collection payloads used
// for backup and sharing.
package export

import (
	"strings"

	"github.com/avulnerador/shop-master/internal/shop"
)

// FoundryActor is the Foundry VTT actor document produced for a shop. The
// full shop rides along under flags so a re-import can recover everything
// the actor shape itself flattens away.
type FoundryActor struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	System string        `json:"system"`
	Flags  FoundryFlags  `json:"flags"`
	Items  []FoundryItem `json:"items"`
}

// FoundryFlags carries the module-scoped payload.
type FoundryFlags struct {
	RPGShopMaster shop.Shop `json:"rpgShopMaster"`
}

// FoundryItem is one inventory entry in actor form. Price carries the
// effective (modifier-applied) value, not the catalog base price.
type FoundryItem struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	System FoundryItemSystem `json:"system"`
}

// FoundryItemSystem is the system data block of a Foundry item.
type FoundryItemSystem struct {
	Price  FoundryPrice `json:"price"`
	Weight string       `json:"weight"`
	Rarity string       `json:"rarity"`
}

// FoundryPrice wraps the effective price value.
type FoundryPrice struct {
	Value int `json:"value"`
}

// ToFoundry converts a shop into its Foundry VTT actor document.
//
// Postcondition: every inventory entry appears with its effective price
// under the shop's current modifiers and its type tag lowercased; the
// embedded flags payload is an owned copy of the shop.
func ToFoundry(s shop.Shop) FoundryActor {
	items := make([]FoundryItem, 0, len(s.Inventory))
	for _, item := range s.Inventory {
		items = append(items, FoundryItem{
			Name: item.Name,
			Type: strings.ToLower(item.Type),
			System: FoundryItemSystem{
				Price:  FoundryPrice{Value: shop.FinalPrice(item, s.Settings)},
				Weight: item.Weight,
				Rarity: item.Rarity,
			},
		})
	}
	return FoundryActor{
		Name:   s.Name,
		Type:   "npc",
		System: "generic",
		Flags:  FoundryFlags{RPGShopMaster: s.Clone()},
		Items:  items,
	}
}

// FileName returns the suggested download name for a shop export:
// whitespace runs collapse to single underscores.
func FileName(s shop.Shop) string {
	return strings.Join(strings.Fields(s.Name), "_") + ".json"
}

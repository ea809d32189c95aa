// Package catalog owns the shared, reusable collections the generator
// draws from: items, NPCs, cities, and the four extensible taxonomies.
// Everything handed out by this package is a copy; no consumer ever holds
// a live alias into a catalog collection.
package catalog

import (
	"errors"
	"fmt"
)

// Item is a catalog entry for purchasable stock. Rarity, Type, and System
// are free-form tags drawn from the taxonomies but never enforced as
// closed sets; dangling references display as literal strings.
type Item struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Currency    string  `json:"currency" yaml:"currency"`
	Weight      string  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Rarity      string  `json:"rarity" yaml:"rarity"`
	Type        string  `json:"type" yaml:"type"`
	System      string  `json:"system" yaml:"system"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate checks the item invariants.
//
// Postcondition: returns nil iff ID and Name are non-empty and Price >= 0.
func (i Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if i.Price < 0 {
		errs = append(errs, errors.New("Price must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// NPC is a shopkeeper archetype. ID is present for catalog-resident NPCs
// and empty for transient generated keepers.
type NPC struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Race        string `json:"race" yaml:"race"`
	Personality string `json:"personality" yaml:"personality"`
	Description string `json:"description" yaml:"description"`
	AvatarURL   string `json:"avatarUrl" yaml:"avatar_url"`
}

// City is a label source for shop locations and a generation-time random
// pool.
type City struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Taxonomy identifies one of the four independent tag sets.
type Taxonomy int

// The four taxonomies.
const (
	ShopTypes Taxonomy = iota
	ItemTypes
	Systems
	Rarities
)

// String returns the taxonomy's display name.
func (t Taxonomy) String() string {
	switch t {
	case ShopTypes:
		return "shop types"
	case ItemTypes:
		return "item types"
	case Systems:
		return "systems"
	case Rarities:
		return "rarities"
	default:
		return fmt.Sprintf("taxonomy(%d)", int(t))
	}
}

// AllTaxonomies lists every taxonomy in display order.
var AllTaxonomies = []Taxonomy{ShopTypes, ItemTypes, Systems, Rarities}

// Rules is the export/import payload shape for the four taxonomies. Nil
// slices mean "not present in the payload" on import.
type Rules struct {
	ShopTypes []string `json:"shopTypes,omitempty"`
	ItemTypes []string `json:"itemTypes,omitempty"`
	Systems   []string `json:"systems,omitempty"`
	Rarities  []string `json:"rarities,omitempty"`
}

// Dataset is a full snapshot of every catalog collection. Used both as the
// built-in seed shape and as the read surface handed to the generation
// engine.
type Dataset struct {
	Items     []Item
	NPCs      []NPC
	Cities    []City
	ShopTypes []string
	ItemTypes []string
	Systems   []string
	Rarities  []string
}

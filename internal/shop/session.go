package shop

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/avulnerador/shop-master/internal/catalog"
)

// ErrInventoryFull is returned when an add would push the inventory past
// MaxInventory.
var ErrInventoryFull = errors.New("shop inventory is full")

// ItemPatch carries partial inventory-entry updates; nil fields are left
// unchanged.
type ItemPatch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Weight      *string  `json:"weight,omitempty"`
	Rarity      *string  `json:"rarity,omitempty"`
	Type        *string  `json:"type,omitempty"`
	System      *string  `json:"system,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// NPCPatch carries partial keeper updates; nil fields are left unchanged.
type NPCPatch struct {
	Name        *string `json:"name,omitempty"`
	Race        *string `json:"race,omitempty"`
	Personality *string `json:"personality,omitempty"`
	Description *string `json:"description,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// Session owns the single "current shop" being displayed and edited.
// Every mutation is a synchronous shallow-merge patch; all of them are
// silent no-ops while no shop is loaded. Replacing the current shop
// discards unsaved edits; that is accepted behavior, not a defect.
type Session struct {
	mu      sync.Mutex
	current *Shop
}

// NewSession returns a session with no current shop.
func NewSession() *Session {
	return &Session{}
}

// SetCurrent replaces the current shop with a deep copy of s.
func (sess *Session) SetCurrent(s Shop) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cloned := s.Clone()
	sess.current = &cloned
}

// Clear drops the current shop.
func (sess *Session) Clear() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.current = nil
}

// Current returns a deep copy of the current shop, or ok=false when none
// is loaded.
func (sess *Session) Current() (Shop, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.current == nil {
		return Shop{}, false
	}
	return sess.current.Clone(), true
}

// CurrentID returns the current shop's id, or "" when none is loaded.
func (sess *Session) CurrentID() string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.current == nil {
		return ""
	}
	return sess.current.ID
}

// Rename sets the shop name.
func (sess *Session) Rename(name string) {
	sess.mutate(func(s *Shop) { s.Name = name })
}

// SetLocation sets the shop location label.
func (sess *Session) SetLocation(location string) {
	sess.mutate(func(s *Shop) { s.Location = location })
}

// ApplyNPC overwrites the keeper with a full copy of the given catalog
// NPC. Nothing of the previous keeper survives.
func (sess *Session) ApplyNPC(npc catalog.NPC) {
	sess.mutate(func(s *Shop) { s.NPC = npc })
}

// PatchNPC applies a partial update to the keeper's fields.
func (sess *Session) PatchNPC(p NPCPatch) {
	sess.mutate(func(s *Shop) {
		if p.Name != nil {
			s.NPC.Name = *p.Name
		}
		if p.Race != nil {
			s.NPC.Race = *p.Race
		}
		if p.Personality != nil {
			s.NPC.Personality = *p.Personality
		}
		if p.Description != nil {
			s.NPC.Description = *p.Description
		}
		if p.AvatarURL != nil {
			s.NPC.AvatarURL = *p.AvatarURL
		}
	})
}

// AddItem appends a copy of the catalog item as a new inventory entry
// with a fresh instance id.
//
// Postcondition: on success the returned id names the new entry and is
// distinct from the catalog item's id. Returns ErrInventoryFull once the
// inventory holds MaxInventory entries; no shop loaded is a silent no-op.
func (sess *Session) AddItem(item catalog.Item) (string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.current == nil {
		return "", nil
	}
	if len(sess.current.Inventory) >= MaxInventory {
		return "", ErrInventoryFull
	}
	item.ID = uuid.NewString()
	sess.current.Inventory = append(sess.current.Inventory, item)
	return item.ID, nil
}

// RemoveItem removes the inventory entry with the given instance id.
// Missing ids are a silent no-op.
func (sess *Session) RemoveItem(instanceID string) {
	sess.mutate(func(s *Shop) {
		kept := s.Inventory[:0]
		for _, i := range s.Inventory {
			if i.ID == instanceID {
				continue
			}
			kept = append(kept, i)
		}
		s.Inventory = kept
	})
}

// UpdateItem patches the inventory entry with the given instance id in
// place. Missing ids are a silent no-op.
func (sess *Session) UpdateItem(instanceID string, p ItemPatch) {
	sess.mutate(func(s *Shop) {
		for idx := range s.Inventory {
			if s.Inventory[idx].ID != instanceID {
				continue
			}
			it := &s.Inventory[idx]
			if p.Name != nil {
				it.Name = *p.Name
			}
			if p.Price != nil {
				it.Price = *p.Price
			}
			if p.Currency != nil {
				it.Currency = *p.Currency
			}
			if p.Weight != nil {
				it.Weight = *p.Weight
			}
			if p.Rarity != nil {
				it.Rarity = *p.Rarity
			}
			if p.Type != nil {
				it.Type = *p.Type
			}
			if p.System != nil {
				it.System = *p.System
			}
			if p.Description != nil {
				it.Description = *p.Description
			}
			return
		}
	})
}

// SetPriceModifier sets the global price multiplier. The slider is free;
// no generation-time bound applies here.
func (sess *Session) SetPriceModifier(mod float64) {
	sess.mutate(func(s *Shop) { s.Settings.PriceModifier = mod })
}

// SetCategoryModifier sets one per-item-type multiplier.
func (sess *Session) SetCategoryModifier(category string, mod float64) {
	sess.mutate(func(s *Shop) {
		if s.Settings.CategoryModifiers == nil {
			s.Settings.CategoryModifiers = make(map[string]float64)
		}
		s.Settings.CategoryModifiers[category] = mod
	})
}

// SetAllowBarter sets the barter toggle.
func (sess *Session) SetAllowBarter(allow bool) {
	sess.mutate(func(s *Shop) { s.Settings.AllowBarter = allow })
}

// SetFlavorText replaces the flavor line.
func (sess *Session) SetFlavorText(text string) {
	sess.mutate(func(s *Shop) { s.Settings.FlavorText = text })
}

// SetAppearance replaces the appearance overrides.
func (sess *Session) SetAppearance(a Appearance) {
	sess.mutate(func(s *Shop) { s.Appearance = &a })
}

// ClearAppearance resets the appearance to nil so rendering falls through
// to global settings, not to explicit defaults.
func (sess *Session) ClearAppearance() {
	sess.mutate(func(s *Shop) { s.Appearance = nil })
}

func (sess *Session) mutate(fn func(*Shop)) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.current == nil {
		return
	}
	fn(sess.current)
}

package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/avulnerador/shop-master/internal/catalog"
)

// Collection encoding/decoding for backup and sharing. Exports are
// pretty-printed; imports reject the whole payload on any shape error so a
// bad file never partially applies.

// MarshalCollection pretty-prints a catalog collection or rules payload.
func MarshalCollection(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}

// DecodeItems parses an item collection payload.
//
// Postcondition: returns the full decoded slice, or an error and no items
// if any element fails to decode.
func DecodeItems(data []byte) ([]catalog.Item, error) {
	var items []catalog.Item
	if err := strictDecode(data, &items); err != nil {
		return nil, fmt.Errorf("invalid item payload: %w", err)
	}
	return items, nil
}

// DecodeNPCs parses an NPC collection payload.
func DecodeNPCs(data []byte) ([]catalog.NPC, error) {
	var npcs []catalog.NPC
	if err := strictDecode(data, &npcs); err != nil {
		return nil, fmt.Errorf("invalid NPC payload: %w", err)
	}
	return npcs, nil
}

// DecodeCities parses a city collection payload.
func DecodeCities(data []byte) ([]catalog.City, error) {
	var cities []catalog.City
	if err := strictDecode(data, &cities); err != nil {
		return nil, fmt.Errorf("invalid city payload: %w", err)
	}
	return cities, nil
}

// DecodeRules parses a taxonomy rules payload. Absent keys decode as nil
// slices, which the importer treats as "leave that taxonomy alone".
func DecodeRules(data []byte) (catalog.Rules, error) {
	var rules catalog.Rules
	if err := strictDecode(data, &rules); err != nil {
		return catalog.Rules{}, fmt.Errorf("invalid rules payload: %w", err)
	}
	return rules, nil
}

// strictDecode decodes exactly one JSON value and rejects trailing
// content, so concatenated or truncated files fail loudly.
func strictDecode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected trailing content")
	}
	return nil
}

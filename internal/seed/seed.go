// Package seed carries the built-in starter dataset. The catalog store
// falls back to it collection by collection when a persisted key is absent
// or unreadable, so a fresh install is usable immediately.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/avulnerador/shop-master/internal/catalog"
)

//go:embed data/*.yaml
var dataFS embed.FS

type yamlItemsFile struct {
	Items []catalog.Item `yaml:"items"`
}

type yamlNPCsFile struct {
	NPCs []catalog.NPC `yaml:"npcs"`
}

type yamlCitiesFile struct {
	Cities []catalog.City `yaml:"cities"`
}

type yamlTaxonomiesFile struct {
	ShopTypes []string `yaml:"shop_types"`
	ItemTypes []string `yaml:"item_types"`
	Systems   []string `yaml:"systems"`
	Rarities  []string `yaml:"rarities"`
}

// Dataset parses the embedded seed content.
//
// Postcondition: Returns a fully populated Dataset with every item passing
// validation, or a non-nil error. The embedded files ship with the binary,
// so an error here means a broken build, not bad user data.
func Dataset() (catalog.Dataset, error) {
	items, err := loadItems()
	if err != nil {
		return catalog.Dataset{}, err
	}
	npcs, err := loadNPCs()
	if err != nil {
		return catalog.Dataset{}, err
	}
	cities, err := loadCities()
	if err != nil {
		return catalog.Dataset{}, err
	}

	var tax yamlTaxonomiesFile
	if err := parseFile("data/taxonomies.yaml", &tax); err != nil {
		return catalog.Dataset{}, err
	}
	if len(tax.ShopTypes) == 0 || len(tax.ItemTypes) == 0 || len(tax.Systems) == 0 || len(tax.Rarities) == 0 {
		return catalog.Dataset{}, fmt.Errorf("seed.Dataset: taxonomies.yaml must populate all four tag sets")
	}

	return catalog.Dataset{
		Items:     items,
		NPCs:      npcs,
		Cities:    cities,
		ShopTypes: tax.ShopTypes,
		ItemTypes: tax.ItemTypes,
		Systems:   tax.Systems,
		Rarities:  tax.Rarities,
	}, nil
}

func loadItems() ([]catalog.Item, error) {
	var f yamlItemsFile
	if err := parseFile("data/items.yaml", &f); err != nil {
		return nil, err
	}
	for _, item := range f.Items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("seed.Dataset: item %q: %w", item.ID, err)
		}
	}
	return f.Items, nil
}

func loadNPCs() ([]catalog.NPC, error) {
	var f yamlNPCsFile
	if err := parseFile("data/npcs.yaml", &f); err != nil {
		return nil, err
	}
	for _, npc := range f.NPCs {
		if npc.ID == "" || npc.Name == "" {
			return nil, fmt.Errorf("seed.Dataset: NPC entries need an id and a name, got id=%q name=%q", npc.ID, npc.Name)
		}
	}
	return f.NPCs, nil
}

func loadCities() ([]catalog.City, error) {
	var f yamlCitiesFile
	if err := parseFile("data/cities.yaml", &f); err != nil {
		return nil, err
	}
	for _, city := range f.Cities {
		if city.ID == "" || city.Name == "" {
			return nil, fmt.Errorf("seed.Dataset: city entries need an id and a name, got id=%q name=%q", city.ID, city.Name)
		}
	}
	return f.Cities, nil
}

func parseFile(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("seed.Dataset: reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("seed.Dataset: parsing %s: %w", name, err)
	}
	return nil
}

package generate

// GeneralShopType is the wildcard archetype: when selected, every
// system-compatible item is relevant stock.
const GeneralShopType = "General"

// archetypeStock maps the built-in shop archetypes to the item types they
// stock. This is a closed, hard-coded policy: custom shop types fall back
// to literal type-name matching, and extending the mapping would change
// observable generation output.
var archetypeStock = map[string][]string{
	"Blacksmith": {"Weapon", "Armor"},
	"Alchemist":  {"Potion"},
	"Magic":      {"MagicItem", "Potion"},
	"Tavern":     {"Service", "Gear"},
}

// stocksType reports whether the archetype carries items of the given
// type. Unknown archetypes match their own name literally.
func stocksType(archetype, itemType string) bool {
	types, ok := archetypeStock[archetype]
	if !ok {
		return itemType == archetype
	}
	for _, t := range types {
		if t == itemType {
			return true
		}
	}
	return false
}

// Fixed sampling pools for synthesized keepers and shop flavor.
var (
	npcNames = []string{
		"Borin", "Mira", "Thadeus", "Wilhelmina", "Grok", "Elara",
		"Fenwick", "Isolde", "Dunstan", "Nyx", "Otto", "Seraphine",
	}

	npcRaces = []string{
		"Human", "Elf", "Dwarf", "Halfling", "Gnome",
		"Half-Orc", "Tiefling", "Dragonborn",
	}

	npcTraits = []string{
		"Gruff", "Cheerful", "Suspicious", "Talkative", "Absent-minded",
		"Shrewd", "Superstitious", "Jovial", "Weary", "Meticulous",
	}

	flavorTexts = []string{
		"The shelves sag under wares from a dozen realms.",
		"A faint smell of oil and cold iron hangs in the air.",
		"Every purchase comes with an unsolicited story.",
		"The keeper insists all sales are final. Loudly.",
		"Candles burn at odd hours here; the stock changes just as oddly.",
		"Regulars swear the back room holds the real treasures.",
		"A hand-painted sign promises fair prices and mostly delivers.",
		"Something small and unseen rearranges the merchandise at night.",
	}
)

// Defaults used for synthesized and placeholder keepers.
const (
	generatedNPCDescription = "A seasoned veteran of the trade."
	unknownLabel            = "Unknown"
	avatarURLPattern        = "https://picsum.photos/seed/%d/200"
)

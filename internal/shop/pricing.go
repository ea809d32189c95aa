package shop

import (
	"math"

	"github.com/avulnerador/shop-master/internal/catalog"
)

// FinalPrice applies the shop's price modulation to one inventory entry:
//
//	ceil(price × priceModifier × categoryModifiers[type])
//
// A category absent from the map (or set to zero) counts as 1.0. Rounding
// is always up, so a modified price never undercuts the nominal catalog
// price once the combined modifier is >= 1.
func FinalPrice(item catalog.Item, s Settings) int {
	mod := s.CategoryModifiers[item.Type]
	if mod == 0 {
		mod = 1.0
	}
	return int(math.Ceil(item.Price * s.PriceModifier * mod))
}

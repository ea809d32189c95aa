package shop_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/shop"
)

func TestFinalPrice_CeilsUp(t *testing.T) {
	item := catalog.Item{Price: 10, Type: "Weapon"}
	settings := shop.Settings{
		PriceModifier:     1.15,
		CategoryModifiers: map[string]float64{"Weapon": 1.0},
	}
	// 10 × 1.15 × 1.0 = 11.5 → 12
	assert.Equal(t, 12, shop.FinalPrice(item, settings))
}

func TestFinalPrice_MissingCategoryDefaultsToOne(t *testing.T) {
	item := catalog.Item{Price: 10, Type: "Potion"}
	settings := shop.Settings{PriceModifier: 2.0}
	assert.Equal(t, 20, shop.FinalPrice(item, settings))
}

func TestFinalPrice_AppliesCategoryModifier(t *testing.T) {
	item := catalog.Item{Price: 100, Type: "Potion"}
	settings := shop.Settings{
		PriceModifier:     1.0,
		CategoryModifiers: map[string]float64{"Potion": 0.5, "Weapon": 3.0},
	}
	assert.Equal(t, 50, shop.FinalPrice(item, settings))
}

func TestFinalPrice_ExactProductIsNotRoundedUp(t *testing.T) {
	item := catalog.Item{Price: 10, Type: "Gear"}
	settings := shop.Settings{PriceModifier: 1.5}
	assert.Equal(t, 15, shop.FinalPrice(item, settings))
}

// TestFinalPrice_NeverUndercuts verifies the rounding direction: with a
// combined modifier >= 1 the final price never drops below the nominal
// catalog price.
func TestFinalPrice_NeverUndercuts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		price := float64(rapid.IntRange(0, 10000).Draw(rt, "price"))
		mod := 1.0 + float64(rapid.IntRange(0, 200).Draw(rt, "modPct"))/100
		item := catalog.Item{Price: price, Type: "Weapon"}
		settings := shop.Settings{PriceModifier: mod}

		final := shop.FinalPrice(item, settings)
		assert.GreaterOrEqual(rt, float64(final), price)
		assert.Equal(rt, int(math.Ceil(price*mod)), final)
	})
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	cat := Default()

	info, ok := cat.Find("HSD")
	require.True(t, ok)
	assert.Equal(t, "High Speed Diesel", info.Name)
	assert.Equal(t, CategoryIndustrialFuels, info.Category)
	assert.Contains(t, info.Keywords, "diesel")

	_, ok = cat.Find("LNG")
	assert.False(t, ok)
}

func TestIndustryProducts(t *testing.T) {
	cat := Default()

	assert.Equal(t, []string{"JBO"}, cat.IndustryProducts("jute"))
	assert.Nil(t, cat.IndustryProducts("aerospace"))
}

func TestDefault_EveryMappedProductExists(t *testing.T) {
	cat := Default()

	for _, m := range cat.Industries {
		for _, code := range m.Products {
			_, ok := cat.Find(code)
			assert.True(t, ok, "industry %s maps unknown product %s", m.Industry, code)
		}
	}
	for _, eq := range cat.Equipment {
		for _, code := range eq.Products {
			_, ok := cat.Find(code)
			assert.True(t, ok, "equipment %s maps unknown product %s", eq.Phrase, code)
		}
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseItemLines(t *testing.T) {
	t.Run("MixedQuantityMarkers", func(t *testing.T) {
		items, err := ParseItemLines("600x 2шт\nF22x\nсистенд 40 x4")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{
			{Token: "600x", Qty: 2},
			{Token: "f22x", Qty: 1},
			{Token: "систенд 40", Qty: 4},
		}, items)
	})

	t.Run("DefaultQuantityIsOne", func(t *testing.T) {
		items, err := ParseItemLines("парус")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{{Token: "парус", Qty: 1}}, items)
	})

	t.Run("TrailingBareNumber", func(t *testing.T) {
		items, err := ParseItemLines("стойка 3")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{{Token: "стойка", Qty: 3}}, items)
	})

	t.Run("CyrillicMultiplierNormalized", func(t *testing.T) {
		// "х" here is the Cyrillic letter, as typed from a Russian layout.
		items, err := ParseItemLines("стойка х2")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{{Token: "стойка", Qty: 2}}, items)
	})

	t.Run("MultiplicationSignNormalized", func(t *testing.T) {
		items, err := ParseItemLines("hmi ×3")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{{Token: "hmi", Qty: 3}}, items)
	})

	t.Run("XWithSpaceBeforeDigits", func(t *testing.T) {
		items, err := ParseItemLines("стойка x 2")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{{Token: "стойка", Qty: 2}}, items)
	})

	t.Run("BlankLinesSkipped", func(t *testing.T) {
		items, err := ParseItemLines("\n  600x 2шт  \n\n парус \n")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{
			{Token: "600x", Qty: 2},
			{Token: "парус", Qty: 1},
		}, items)
	})

	t.Run("TokensLowercased", func(t *testing.T) {
		items, err := ParseItemLines("Aputure 600X 2шт")
		assert.NoError(t, err)
		assert.Equal(t, []ParsedItem{{Token: "aputure 600x", Qty: 2}}, items)
	})

	t.Run("ZeroQuantityRejected", func(t *testing.T) {
		_, err := ParseItemLines("стойка x0")
		assert.Error(t, err)
	})

	t.Run("EmptyTokenRejected", func(t *testing.T) {
		_, err := ParseItemLines("x4")
		assert.Error(t, err)
	})

	t.Run("EmptyInputRejected", func(t *testing.T) {
		_, err := ParseItemLines("  \n \n")
		assert.Error(t, err)
	})
}

package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Spring Rolls", Category: CategoryAppetizer, Price: decimal.NewFromInt(6)},
		{ID: 2, Name: "Pad Thai", Category: CategoryMain, Price: decimal.NewFromInt(14)},
		{ID: 3, Name: "Thai Iced Tea", Category: CategoryBeverage, Price: decimal.NewFromInt(5)},
		{ID: 4, Name: "Mango Sticky Rice", Category: CategoryDessert, Price: decimal.NewFromInt(8)},
		{ID: 5, Name: "Chef's Special", Category: "special", Price: decimal.NewFromInt(20)},
		{ID: 6, Name: "Green Curry", Category: CategoryMain, Price: decimal.NewFromInt(13)},
	}
}

func TestSearch(t *testing.T) {
	items := sampleMenu()

	t.Run("Case-insensitive substring match", func(t *testing.T) {
		got := Search(items, "tHaI")

		require.Len(t, got, 2)
		assert.Equal(t, "Pad Thai", got[0].Name)
		assert.Equal(t, "Thai Iced Tea", got[1].Name)
	})

	t.Run("Empty term matches everything", func(t *testing.T) {
		assert.Len(t, Search(items, ""), len(items))
	})

	t.Run("No match yields empty slice", func(t *testing.T) {
		assert.Empty(t, Search(items, "pizza"))
	})
}

func TestFilterByCategory(t *testing.T) {
	items := sampleMenu()

	t.Run("Exact category match", func(t *testing.T) {
		got := FilterByCategory(items, CategoryMain)

		require.Len(t, got, 2)
		assert.Equal(t, "Pad Thai", got[0].Name)
		assert.Equal(t, "Green Curry", got[1].Name)
	})

	t.Run("All is a wildcard", func(t *testing.T) {
		assert.Len(t, FilterByCategory(items, CategoryAll), len(items))
	})

	t.Run("Unknown item categories are reachable via Other", func(t *testing.T) {
		got := FilterByCategory(items, CategoryOther)

		require.Len(t, got, 1)
		assert.Equal(t, "Chef's Special", got[0].Name)
	})
}

func TestGroupByCategory(t *testing.T) {
	t.Run("Groups follow display order, items keep input order", func(t *testing.T) {
		groups := GroupByCategory(sampleMenu())

		require.Len(t, groups, 5)
		assert.Equal(t, CategoryAppetizer, groups[0].Category)
		assert.Equal(t, CategoryMain, groups[1].Category)
		assert.Equal(t, CategoryDessert, groups[2].Category)
		assert.Equal(t, CategoryBeverage, groups[3].Category)
		assert.Equal(t, CategoryOther, groups[4].Category)

		require.Len(t, groups[1].Items, 2)
		assert.Equal(t, "Pad Thai", groups[1].Items[0].Name)
		assert.Equal(t, "Green Curry", groups[1].Items[1].Name)
	})

	t.Run("Unknown category bucketed under Other", func(t *testing.T) {
		groups := GroupByCategory([]MenuItem{{Name: "Mystery", Category: "special"}})

		require.Len(t, groups, 1)
		assert.Equal(t, CategoryOther, groups[0].Category)
	})

	t.Run("Empty groups are omitted", func(t *testing.T) {
		groups := GroupByCategory([]MenuItem{{Name: "Tea", Category: CategoryBeverage}})

		require.Len(t, groups, 1)
		assert.Equal(t, CategoryBeverage, groups[0].Category)
	})

	t.Run("Input is not mutated", func(t *testing.T) {
		items := sampleMenu()

		GroupByCategory(items)

		assert.Equal(t, sampleMenu(), items)
	})
}

func TestPresent(t *testing.T) {
	t.Run("Search and filter apply before grouping", func(t *testing.T) {
		groups := Present(sampleMenu(), "thai", CategoryBeverage)

		require.Len(t, groups, 1)
		assert.Equal(t, CategoryBeverage, groups[0].Category)
		require.Len(t, groups[0].Items, 1)
		assert.Equal(t, "Thai Iced Tea", groups[0].Items[0].Name)
	})
}

func TestCategory(t *testing.T) {
	t.Run("Normalize buckets unknown values under Other", func(t *testing.T) {
		assert.Equal(t, CategoryOther, Category("special").Normalize())
		assert.Equal(t, CategoryOther, Category("").Normalize())
		assert.Equal(t, CategoryMain, CategoryMain.Normalize())
	})

	t.Run("Valid rejects the wildcard and unknowns", func(t *testing.T) {
		assert.True(t, CategoryDessert.Valid())
		assert.False(t, CategoryAll.Valid())
		assert.False(t, Category("special").Valid())
	})
}

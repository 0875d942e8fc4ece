package canteen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canteen "github.com/campushub/go-canteen"
)

func TestNewCatalogSeedsSampleMenuByDefault(t *testing.T) {
	catalog, err := canteen.NewCatalog(nil)
	require.NoError(t, err)

	items := catalog.Items()
	assert.Equal(t, len(canteen.SampleMenu()), len(items))

	item, ok := catalog.Item("masala-chai")
	require.True(t, ok)
	assert.Equal(t, "Masala Chai", item.Name)
	assert.Equal(t, canteen.CategoryBeverage, item.Category)
}

func TestNewCatalogRejectsInvalidItems(t *testing.T) {
	source := canteen.MenuSourceFunc(func() []canteen.MenuItem {
		return []canteen.MenuItem{{ID: "broken", Name: "Broken", Price: -1, Category: canteen.CategoryDessert}}
	})

	_, err := canteen.NewCatalog(source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	item := canteen.MenuItem{ID: "twin", Name: "Twin", Price: 10, Category: canteen.CategoryDessert}
	source := canteen.MenuSourceFunc(func() []canteen.MenuItem {
		return []canteen.MenuItem{item, item}
	})

	_, err := canteen.NewCatalog(source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestCatalogByCategory(t *testing.T) {
	catalog, err := canteen.NewCatalog(nil)
	require.NoError(t, err)

	fastFood := catalog.ByCategory(canteen.CategoryFastFood)
	require.NotEmpty(t, fastFood)
	for _, item := range fastFood {
		assert.Equal(t, canteen.CategoryFastFood, item.Category)
	}

	assert.Empty(t, catalog.ByCategory("no-such-category"))
}

func TestCatalogAvailableFiltersUnavailableItems(t *testing.T) {
	catalog, err := canteen.NewCatalog(nil)
	require.NoError(t, err)

	for _, item := range catalog.Available() {
		assert.True(t, item.Available)
	}

	item, ok := catalog.Item("filter-coffee")
	require.True(t, ok)
	assert.False(t, item.Available)
}

func TestCatalogItemsReturnsCopy(t *testing.T) {
	catalog, err := canteen.NewCatalog(nil)
	require.NoError(t, err)

	items := catalog.Items()
	items[0].Name = "Hacked"

	fresh := catalog.Items()
	assert.NotEqual(t, "Hacked", fresh[0].Name)
}

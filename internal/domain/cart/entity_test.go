package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lineItem(sku, size string, unitPrice int64) LineItem {
	return LineItem{
		ItemID:    MakeItemID(sku, size),
		ProductID: 1,
		SKU:       sku,
		Name:      "Air Jordan 1",
		Brand:     "Nike",
		Size:      size,
		UnitPrice: unitPrice,
	}
}

// requireConsistent checks the cart's stored totals against a fresh
// reduction over its items.
func requireConsistent(t *testing.T, c Cart) {
	t.Helper()
	var qty int
	var price int64
	for _, item := range c.Items {
		require.Equal(t, int64(item.Quantity)*item.UnitPrice, item.Price)
		qty += item.Quantity
		price += item.Price
	}
	require.Equal(t, qty, c.TotalQty)
	require.Equal(t, price, c.TotalPrice)
}

func TestAddComputesTotals(t *testing.T) {
	c := Cart{SessionID: "sess-1"}

	c = c.Add(lineItem("AA1", "9.5", 20000), 2)

	require.Len(t, c.Items, 1)
	require.Equal(t, 2, c.TotalQty)
	require.Equal(t, int64(40000), c.TotalPrice)
	requireConsistent(t, c)
}

func TestAddSameItemMergesQuantity(t *testing.T) {
	c := Cart{SessionID: "sess-1"}

	c = c.Add(lineItem("AA1", "9.5", 20000), 1)
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)

	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Quantity)
	require.Equal(t, int64(60000), c.TotalPrice)
	requireConsistent(t, c)
}

func TestAddDifferentSizesStaySeparate(t *testing.T) {
	c := Cart{SessionID: "sess-1"}

	c = c.Add(lineItem("AA1", "9.5", 20000), 1)
	c = c.Add(lineItem("AA1", "10", 20000), 1)

	require.Len(t, c.Items, 2)
	require.Equal(t, 2, c.TotalQty)
	requireConsistent(t, c)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	c := Cart{SessionID: "sess-1"}

	c = c.Add(lineItem("AA1", "9.5", 20000), 0)

	require.Equal(t, 1, c.TotalQty)
	requireConsistent(t, c)
}

func TestRemove(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)
	c = c.Add(lineItem("BB2", "10", 15000), 1)

	c = c.Remove(MakeItemID("AA1", "9.5"))

	require.Len(t, c.Items, 1)
	require.Equal(t, "BB2_10", c.Items[0].ItemID)
	require.Equal(t, int64(15000), c.TotalPrice)
	requireConsistent(t, c)
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)

	c = c.Remove("missing_id")

	require.Len(t, c.Items, 1)
	require.Equal(t, int64(40000), c.TotalPrice)
}

func TestAdjustQuantityDelta(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)

	c = c.AdjustQuantity(MakeItemID("AA1", "9.5"), 1)
	require.Equal(t, 3, c.TotalQty)
	require.Equal(t, int64(60000), c.TotalPrice)

	c = c.AdjustQuantity(MakeItemID("AA1", "9.5"), -2)
	require.Equal(t, 1, c.TotalQty)
	require.Equal(t, int64(20000), c.TotalPrice)
	requireConsistent(t, c)
}

func TestAdjustQuantityZeroDeltaIsNoop(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)

	c = c.AdjustQuantity(MakeItemID("AA1", "9.5"), 0)

	require.Equal(t, 2, c.TotalQty)
	require.Equal(t, int64(40000), c.TotalPrice)
	requireConsistent(t, c)
}

func TestAdjustQuantityToZeroRemovesItem(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)

	c = c.AdjustQuantity(MakeItemID("AA1", "9.5"), -2)

	require.True(t, c.IsEmpty())
	require.Equal(t, 0, c.TotalQty)
	require.Equal(t, int64(0), c.TotalPrice)
}

func TestAdjustQuantityBelowZeroRemovesItem(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 1)

	c = c.AdjustQuantity(MakeItemID("AA1", "9.5"), -5)

	require.True(t, c.IsEmpty())
}

func TestClearedEmptiesCart(t *testing.T) {
	c := Cart{SessionID: "sess-1"}
	c = c.Add(lineItem("AA1", "9.5", 20000), 2)
	c = c.Add(lineItem("BB2", "10", 15000), 1)

	c = c.Cleared()

	require.True(t, c.IsEmpty())
	require.Equal(t, 0, c.TotalQty)
	require.Equal(t, int64(0), c.TotalPrice)
}

func TestMutationsDoNotAliasOriginal(t *testing.T) {
	base := Cart{SessionID: "sess-1"}
	base = base.Add(lineItem("AA1", "9.5", 20000), 1)

	grown := base.Add(lineItem("AA1", "9.5", 20000), 4)

	require.Equal(t, 1, base.Items[0].Quantity)
	require.Equal(t, 5, grown.Items[0].Quantity)
}

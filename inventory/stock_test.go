package inventory

import (
	"testing"

	"marketplace/models"

	"github.com/stretchr/testify/assert"
)

func variantProduct() models.Product {
	return models.Product{
		Name:  "Custom Tee",
		Price: 19.99,
		Stock: 9,
		Variants: []models.Variant{
			{Color: "red", Size: "M", Stock: 5},
			{Color: "blue", Size: "L", Stock: 4},
		},
	}
}

func TestApplyReserve_VariantDecrementAndAggregateRecompute(t *testing.T) {
	p := variantProduct()

	err := ApplyReserve(&p, 2, "red", "M")

	assert.NoError(t, err)
	assert.Equal(t, 3, p.Variants[0].Stock)
	assert.Equal(t, 4, p.Variants[1].Stock)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, p.VariantStockSum(), p.Stock)
	assert.Equal(t, 2, p.SoldCount)
}

func TestApplyReserve_ClobbersStaleAggregate(t *testing.T) {
	p := variantProduct()
	// A drifted aggregate must be discarded in favor of the variant sum.
	p.Stock = 42

	err := ApplyReserve(&p, 1, "blue", "L")

	assert.NoError(t, err)
	assert.Equal(t, 8, p.Stock)
	assert.Equal(t, p.VariantStockSum(), p.Stock)
}

func TestApplyReserve_FloorsVariantAtZero(t *testing.T) {
	p := variantProduct()

	err := ApplyReserve(&p, 10, "red", "M")

	assert.NoError(t, err)
	assert.Equal(t, 0, p.Variants[0].Stock)
	assert.Equal(t, 4, p.Stock)
}

func TestApplyReserve_UnknownVariant(t *testing.T) {
	p := variantProduct()

	err := ApplyReserve(&p, 1, "green", "XL")

	assert.Error(t, err)
	assert.ErrorContains(t, err, "variant (green, XL) not found")
	assert.Equal(t, 9, p.Stock)
	assert.Equal(t, 0, p.SoldCount)
}

func TestApplyReserve_AggregateOnlyProduct(t *testing.T) {
	p := models.Product{Name: "Mug", Stock: 3}

	assert.NoError(t, ApplyReserve(&p, 2, "", ""))
	assert.Equal(t, 1, p.Stock)

	// Floored at zero, not negative.
	assert.NoError(t, ApplyReserve(&p, 5, "", ""))
	assert.Equal(t, 0, p.Stock)
}

func TestApplyRestore_IsExactInverseOfReserve(t *testing.T) {
	p := variantProduct()
	before := variantProduct()

	assert.NoError(t, ApplyReserve(&p, 2, "red", "M"))
	assert.NoError(t, ApplyRestore(&p, 2, "red", "M"))

	assert.Equal(t, before.Variants, p.Variants)
	assert.Equal(t, before.Stock, p.Stock)
	assert.Equal(t, before.SoldCount, p.SoldCount)
}

func TestApplyRestore_RecomputesAggregateFromVariants(t *testing.T) {
	p := variantProduct()
	p.Stock = 0 // stale

	err := ApplyRestore(&p, 3, "blue", "L")

	assert.NoError(t, err)
	assert.Equal(t, 7, p.Variants[1].Stock)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, p.VariantStockSum(), p.Stock)
}

func TestApplyRestore_SoldCountNeverNegative(t *testing.T) {
	p := models.Product{Name: "Mug", Stock: 3, SoldCount: 1}

	assert.NoError(t, ApplyRestore(&p, 4, "", ""))
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, 0, p.SoldCount)
}

func TestVariantInvariant_HeldAcrossOperationSequences(t *testing.T) {
	p := variantProduct()

	steps := []struct {
		reserve     bool
		qty         int
		color, size string
	}{
		{true, 2, "red", "M"},
		{true, 4, "blue", "L"},
		{false, 1, "red", "M"},
		{true, 3, "red", "M"},
		{false, 4, "blue", "L"},
	}

	for _, s := range steps {
		var err error
		if s.reserve {
			err = ApplyReserve(&p, s.qty, s.color, s.size)
		} else {
			err = ApplyRestore(&p, s.qty, s.color, s.size)
		}
		assert.NoError(t, err)
		assert.Equal(t, p.VariantStockSum(), p.Stock)
	}
}

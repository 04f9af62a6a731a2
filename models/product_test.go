package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantStockSum(t *testing.T) {
	p := Product{Variants: []Variant{
		{Color: "red", Size: "M", Stock: 5},
		{Color: "red", Size: "L", Stock: 0},
		{Color: "blue", Size: "M", Stock: 2},
	}}
	assert.Equal(t, 7, p.VariantStockSum())

	empty := Product{}
	assert.Equal(t, 0, empty.VariantStockSum())
	assert.False(t, empty.HasVariants())
}

func TestFindVariant_ExactMatchOnly(t *testing.T) {
	p := Product{Variants: []Variant{
		{Color: "red", Size: "M", Stock: 5},
		{Color: "blue", Size: "L", Stock: 2},
	}}

	assert.Equal(t, 0, p.FindVariant("red", "M"))
	assert.Equal(t, 1, p.FindVariant("blue", "L"))
	assert.Equal(t, -1, p.FindVariant("red", "L"))
	assert.Equal(t, -1, p.FindVariant("Red", "M"))
}

func TestPurchasable(t *testing.T) {
	assert.True(t, (&Product{Status: ProductStatusApproved, IsActive: true}).Purchasable())
	assert.False(t, (&Product{Status: ProductStatusPending, IsActive: true}).Purchasable())
	assert.False(t, (&Product{Status: ProductStatusApproved, IsActive: false}).Purchasable())
	assert.False(t, (&Product{Status: ProductStatusRejected, IsActive: true}).Purchasable())
}

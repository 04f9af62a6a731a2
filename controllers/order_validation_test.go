package controllers

import (
	"net/http"
	"testing"

	"marketplace/models"

	"github.com/stretchr/testify/assert"
)

func approvedProduct(price float64) models.Product {
	return models.Product{
		Name:     "Custom Tee",
		Price:    price,
		Stock:    10,
		Status:   models.ProductStatusApproved,
		IsActive: true,
	}
}

func TestAmountsMatch(t *testing.T) {
	assert.True(t, amountsMatch(10.00, 10.00))
	assert.True(t, amountsMatch(10.00, 10.01))
	assert.True(t, amountsMatch(10.01, 10.00))
	assert.False(t, amountsMatch(10.00, 10.02))
	assert.False(t, amountsMatch(10.02, 10.00))
}

func TestAmountsMatch_OneCentBoundaryDespiteFloatRepresentation(t *testing.T) {
	// 39.99−39.98 is slightly more than 0.01 in binary; the boundary must
	// still count as within one cent.
	assert.True(t, amountsMatch(39.99, 39.98))
	assert.True(t, amountsMatch(0.03, 0.02))
	assert.True(t, amountsMatch(109.99, 110.00))
	assert.False(t, amountsMatch(39.99, 39.97))
}

func TestComputeSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2, Price: 19.99},
		{Quantity: 1, Price: 5.50},
	}
	assert.InDelta(t, 45.48, computeSubtotal(items), 0.001)
	assert.Equal(t, 0.0, computeSubtotal(nil))
}

func TestVerifyAmounts_TwoCentDriftRejected(t *testing.T) {
	items := []models.OrderItem{{Quantity: 2, Price: 19.99}}
	p := &orderPayload{
		Subtotal:    39.98,
		TotalAmount: 45.00, // server computes 44.98 with a 5.00 shipping fee
	}

	status, msg := verifyAmounts(p, items, 5.00)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Total amount calculation mismatch", msg)
}

func TestVerifyAmounts_WithinToleranceAccepted(t *testing.T) {
	items := []models.OrderItem{{Quantity: 2, Price: 19.99}}
	p := &orderPayload{
		Subtotal:    39.99,
		TotalAmount: 44.99,
	}

	status, msg := verifyAmounts(p, items, 5.00)

	assert.Equal(t, 0, status)
	assert.Empty(t, msg)
}

func TestVerifyAmounts_SubtotalMismatch(t *testing.T) {
	items := []models.OrderItem{{Quantity: 1, Price: 10.00}}
	p := &orderPayload{
		Subtotal:    12.00,
		TotalAmount: 15.00,
	}

	status, msg := verifyAmounts(p, items, 5.00)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Subtotal calculation mismatch", msg)
}

func TestVerifyAmounts_PerItemDriftCannotStack(t *testing.T) {
	// Each item declared a cent below its stored 19.99 price passes the
	// per-item tolerance, but the totals are checked against the stored
	// prices, so the combined two-cent gap is rejected.
	product := approvedProduct(19.99)
	declared := []orderItemPayload{
		{Quantity: 1, Price: 19.98},
		{Quantity: 1, Price: 19.98},
	}
	for _, item := range declared {
		status, _ := verifyItem(item, &product)
		assert.Equal(t, 0, status)
	}

	stored := []models.OrderItem{
		{Quantity: 1, Price: 19.99},
		{Quantity: 1, Price: 19.99},
	}
	p := &orderPayload{
		Subtotal:    39.96,
		TotalAmount: 44.96,
	}

	status, msg := verifyAmounts(p, stored, 5.00)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Subtotal calculation mismatch", msg)
}

func TestValidatePayload_MissingFields(t *testing.T) {
	p := &orderPayload{
		Items: []orderItemPayload{{ProductID: "", Quantity: 0}},
	}

	problems := validatePayload(p)

	assert.Contains(t, problems, "sellerId")
	assert.Contains(t, problems, "items[0].productId")
	assert.Contains(t, problems, "items[0].quantity")
	assert.Contains(t, problems, "paymentMethod")
	assert.Contains(t, problems, "shippingInfo.fullName")
	assert.Contains(t, problems, "shippingInfo.phone")
	assert.Contains(t, problems, "shippingInfo.address")
	assert.Contains(t, problems, "shippingInfo.city")
	assert.Contains(t, problems, "shippingInfo.postalCode")
}

func TestValidatePayload_Valid(t *testing.T) {
	p := &orderPayload{
		SellerID:      "64f000000000000000000001",
		Items:         []orderItemPayload{{ProductID: "64f000000000000000000002", Quantity: 1, Price: 9.99}},
		PaymentMethod: models.PaymentMethodBank,
		ShippingInfo: models.Address{
			FullName:   "Jamie Doe",
			Phone:      "555-0101",
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "62704",
		},
	}

	assert.Empty(t, validatePayload(p))
}

func TestVerifyItem_PriceMismatch(t *testing.T) {
	product := approvedProduct(19.99)
	item := orderItemPayload{Quantity: 1, Price: 19.97}

	status, msg := verifyItem(item, &product)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "Price mismatch")
}

func TestVerifyItem_PriceWithinTolerance(t *testing.T) {
	product := approvedProduct(19.99)
	item := orderItemPayload{Quantity: 1, Price: 19.98}

	status, _ := verifyItem(item, &product)

	assert.Equal(t, 0, status)
}

func TestVerifyItem_InsufficientAggregateStock(t *testing.T) {
	product := approvedProduct(19.99)
	product.Stock = 2
	item := orderItemPayload{Quantity: 3, Price: 19.99}

	status, msg := verifyItem(item, &product)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "Not enough stock")
	assert.Contains(t, msg, "available: 2")
}

func TestVerifyItem_VariantStockChecked(t *testing.T) {
	product := approvedProduct(19.99)
	product.Variants = []models.Variant{
		{Color: "red", Size: "M", Stock: 1},
		{Color: "blue", Size: "L", Stock: 9},
	}
	product.Stock = 10

	status, msg := verifyItem(orderItemPayload{Quantity: 2, Price: 19.99, Color: "red", Size: "M"}, &product)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "Not enough stock")

	status, _ = verifyItem(orderItemPayload{Quantity: 2, Price: 19.99, Color: "blue", Size: "L"}, &product)
	assert.Equal(t, 0, status)
}

func TestVerifyItem_UnknownVariant(t *testing.T) {
	product := approvedProduct(19.99)
	product.Variants = []models.Variant{{Color: "red", Size: "M", Stock: 5}}

	status, msg := verifyItem(orderItemPayload{Quantity: 1, Price: 19.99, Color: "green", Size: "S"}, &product)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "Variant (green, S) not found")
}

func TestVerifyItem_UnpurchasableProduct(t *testing.T) {
	product := approvedProduct(19.99)
	product.IsActive = false

	status, msg := verifyItem(orderItemPayload{Quantity: 1, Price: 19.99}, &product)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, msg, "not available")
}

package controllers

import (
	"fmt"
	"math"
	"net/http"

	"marketplace/models"
)

// Checkout request payload, carried in the "order" multipart field as JSON.
type orderItemPayload struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
}

type orderPayload struct {
	SellerID      string             `json:"sellerId"`
	Items         []orderItemPayload `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	TotalAmount   float64            `json:"totalAmount"`
	PaymentMethod string             `json:"paymentMethod"`
	ShippingInfo  models.Address     `json:"shippingInfo"`
	BillingInfo   models.Address     `json:"billingInfo"`
}

// amountsMatch compares two amounts with a one-cent tolerance. Both sides
// are rounded to integer cents first, so an exact one-cent difference is
// accepted regardless of float64 representation (39.99−39.98 is slightly
// more than 0.01 in binary).
func amountsMatch(a, b float64) bool {
	return math.Abs(math.Round(a*100)-math.Round(b*100)) <= 1
}

// computeSubtotal sums the order items as they will be persisted, i.e. at
// the stored product prices.
func computeSubtotal(items []models.OrderItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// validatePayload checks the request shape before any product lookup.
// Returns a field→message map, empty when valid.
func validatePayload(p *orderPayload) map[string]string {
	problems := map[string]string{}

	if p.SellerID == "" {
		problems["sellerId"] = "Seller is required"
	}
	if len(p.Items) == 0 {
		problems["items"] = "At least one item is required"
	}
	for i, item := range p.Items {
		if item.ProductID == "" {
			problems[fmt.Sprintf("items[%d].productId", i)] = "Product is required"
		}
		if item.Quantity <= 0 {
			problems[fmt.Sprintf("items[%d].quantity", i)] = "Quantity must be positive"
		}
	}
	if p.PaymentMethod != models.PaymentMethodBank && p.PaymentMethod != models.PaymentMethodWallet {
		problems["paymentMethod"] = "Payment method must be bank or wallet"
	}

	addr := p.ShippingInfo
	if addr.FullName == "" {
		problems["shippingInfo.fullName"] = "Full name is required"
	}
	if addr.Phone == "" {
		problems["shippingInfo.phone"] = "Phone is required"
	}
	if addr.Address == "" {
		problems["shippingInfo.address"] = "Address is required"
	}
	if addr.City == "" {
		problems["shippingInfo.city"] = "City is required"
	}
	if addr.PostalCode == "" {
		problems["shippingInfo.postalCode"] = "Postal code is required"
	}

	return problems
}

// verifyItem checks one requested item against its loaded product: the
// product must be purchasable, the declared price must match the stored
// price within one cent, and the requested variant (or aggregate) stock must
// cover the quantity. Returns an HTTP status and message, or 0 when valid.
func verifyItem(item orderItemPayload, product *models.Product) (int, string) {
	if !product.Purchasable() {
		return http.StatusNotFound, fmt.Sprintf("Product %s is not available", product.Name)
	}
	if !amountsMatch(item.Price, product.Price) {
		return http.StatusBadRequest, fmt.Sprintf("Price mismatch for %s", product.Name)
	}

	available := product.Stock
	if product.HasVariants() {
		i := product.FindVariant(item.Color, item.Size)
		if i < 0 {
			return http.StatusBadRequest,
				fmt.Sprintf("Variant (%s, %s) not found for %s", item.Color, item.Size, product.Name)
		}
		available = product.Variants[i].Stock
	}
	if item.Quantity > available {
		return http.StatusBadRequest,
			fmt.Sprintf("Not enough stock for %s, available: %d", product.Name, available)
	}
	return 0, ""
}

// verifyAmounts compares the client-declared subtotal and total against the
// server-recomputed sums within one cent. The subtotal comes from the items
// as they will be persisted (stored prices), not from the declared per-item
// prices, so per-item tolerances cannot stack into a larger total drift.
func verifyAmounts(p *orderPayload, items []models.OrderItem, shippingFee float64) (int, string) {
	subtotal := computeSubtotal(items)
	if !amountsMatch(subtotal, p.Subtotal) {
		return http.StatusBadRequest, "Subtotal calculation mismatch"
	}
	if !amountsMatch(subtotal+shippingFee, p.TotalAmount) {
		return http.StatusBadRequest, "Total amount calculation mismatch"
	}
	return 0, ""
}

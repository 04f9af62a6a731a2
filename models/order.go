package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status strings. These are part of the wire contract with the
// frontend order pages and must not be renamed.
const (
	OrderStatusPending    = "pending"
	OrderStatusPlaced     = "placed"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
	OrderStatusRefunded   = "refunded"
)

const (
	PaymentMethodBank   = "bank"
	PaymentMethodWallet = "wallet"
)

// deliveryTransitions is the allowed delivery sub-flow. Other edges
// (pending→placed→confirmed, cancellation, refund) are handled by their own
// endpoints with their own checks.
var deliveryTransitions = map[string][]string{
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
}

// CanTransitionDelivery reports whether from→to is a legal delivery-flow edge.
func CanTransitionDelivery(from, to string) bool {
	for _, s := range deliveryTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether a buyer may cancel an order in this status.
func Cancellable(status string) bool {
	return status == OrderStatusPending || status == OrderStatusConfirmed
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
}

type Address struct {
	FullName   string `bson:"fullName" json:"fullName"`
	Phone      string `bson:"phone" json:"phone"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
}

// TimelineEntry is one row of the append-only status audit list.
type TimelineEntry struct {
	Status string             `bson:"status" json:"status"`
	Date   time.Time          `bson:"date" json:"date"`
	Note   string             `bson:"note,omitempty" json:"note,omitempty"`
	By     primitive.ObjectID `bson:"by,omitempty" json:"by,omitempty"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuyerID           primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	SellerID          primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Subtotal          float64            `bson:"subtotal" json:"subtotal"`
	ShippingFee       float64            `bson:"shippingFee" json:"shippingFee"`
	TotalAmount       float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentScreenshot string             `bson:"paymentScreenshot,omitempty" json:"paymentScreenshot,omitempty"`
	PaymentConfirmed  bool               `bson:"paymentConfirmed" json:"paymentConfirmed"`
	ShippingInfo      Address            `bson:"shippingInfo" json:"shippingInfo"`
	BillingInfo       Address            `bson:"billingInfo" json:"billingInfo"`
	Status            string             `bson:"status" json:"status"`
	Timeline          []TimelineEntry    `bson:"timeline" json:"timeline"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

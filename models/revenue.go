package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RevenueReasonOrderConfirmed = "order_confirmed"
	RevenueReasonOrderCancelled = "order_cancelled"
)

// RevenueEntry is one signed row of the append-only revenue ledger. The
// admin revenue total is the fold of all entries; no scalar counter exists.
type RevenueEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"orderId"`
	Amount    float64            `bson:"amount" json:"amount"`
	Reason    string             `bson:"reason" json:"reason"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

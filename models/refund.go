package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Refund is a manual audit record for a cancelled order. It does not reverse
// any payment; at most one refund may exist per order.
type Refund struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     primitive.ObjectID `bson:"orderId" json:"orderId"`
	Amount      float64            `bson:"amount" json:"amount"`
	Method      string             `bson:"method" json:"method"`
	Reason      string             `bson:"reason" json:"reason"`
	Screenshot  string             `bson:"screenshot,omitempty" json:"screenshot,omitempty"`
	ProcessedBy primitive.ObjectID `bson:"processedBy" json:"processedBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

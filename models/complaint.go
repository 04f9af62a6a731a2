package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ComplaintStatusOpen     = "open"
	ComplaintStatusResolved = "resolved"
	ComplaintStatusRejected = "rejected"
)

type Complaint struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     primitive.ObjectID `bson:"orderId" json:"orderId"`
	BuyerID     primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description" json:"description"`
	Attachment  string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Resolution  string             `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolvedBy  primitive.ObjectID `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

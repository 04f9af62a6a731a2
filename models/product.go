package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRejected = "rejected"
)

// Variant is a (color, size) stock-keeping unit within a product.
type Variant struct {
	Color string `bson:"color" json:"color"`
	Size  string `bson:"size" json:"size"`
	Stock int    `bson:"stock" json:"stock"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SellerID    primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" binding:"required"`
	Stock       int                `bson:"stock" json:"stock"`
	Variants    []Variant          `bson:"variants,omitempty" json:"variants,omitempty"`
	SoldCount   int                `bson:"soldCount" json:"soldCount"`
	Status      string             `bson:"status" json:"status"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasVariants reports whether stock is tracked per (color, size). When true,
// the aggregate Stock field is always derived from the variant sum.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// VariantStockSum is the source of truth for aggregate stock on products
// with variants.
func (p *Product) VariantStockSum() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// FindVariant returns the index of the exact (color, size) match, or -1.
func (p *Product) FindVariant(color, size string) int {
	for i, v := range p.Variants {
		if v.Color == color && v.Size == size {
			return i
		}
	}
	return -1
}

// Purchasable reports whether the product can appear in a new order.
func (p *Product) Purchasable() bool {
	return p.IsActive && p.Status == ProductStatusApproved
}

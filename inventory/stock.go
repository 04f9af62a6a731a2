package inventory

import (
	"context"
	"fmt"
	"log"
	"time"

	"marketplace/database"
	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
)

// This package is the only place product stock is mutated. Order creation
// reserves through Reserve and compensates failures with Restore; nothing
// else writes the stock, variants or soldCount fields.

// ApplyReserve subtracts qty from the matching (color, size) variant, or from
// the aggregate stock when the product has no variants. Stock is floored at
// zero. When variants exist the aggregate stock is always recomputed as the
// variant sum, discarding whatever value was stored.
func ApplyReserve(p *models.Product, qty int, color, size string) error {
	if p.HasVariants() {
		i := p.FindVariant(color, size)
		if i < 0 {
			return fmt.Errorf("variant (%s, %s) not found for product %s", color, size, p.Name)
		}
		p.Variants[i].Stock -= qty
		if p.Variants[i].Stock < 0 {
			p.Variants[i].Stock = 0
		}
		p.Stock = p.VariantStockSum()
	} else {
		p.Stock -= qty
		if p.Stock < 0 {
			p.Stock = 0
		}
	}
	p.SoldCount += qty
	return nil
}

// ApplyRestore is the inverse of ApplyReserve: it adds qty back to the
// matching variant (or the aggregate) and recomputes the aggregate from the
// variant sum when variants exist.
func ApplyRestore(p *models.Product, qty int, color, size string) error {
	if p.HasVariants() {
		i := p.FindVariant(color, size)
		if i < 0 {
			return fmt.Errorf("variant (%s, %s) not found for product %s", color, size, p.Name)
		}
		p.Variants[i].Stock += qty
		p.Stock = p.VariantStockSum()
	} else {
		p.Stock += qty
	}
	p.SoldCount -= qty
	if p.SoldCount < 0 {
		p.SoldCount = 0
	}
	return nil
}

func persist(ctx context.Context, p *models.Product) error {
	update := bson.M{"$set": bson.M{
		"stock":     p.Stock,
		"soldCount": p.SoldCount,
		"updatedAt": time.Now(),
	}}
	if p.HasVariants() {
		update["$set"].(bson.M)["variants"] = p.Variants
	}
	_, err := database.ProductCollection.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	return err
}

// Reserve decrements stock for every item in order. It returns the items that
// were actually reserved, so a failed order insert can hand them straight
// back to Restore as the compensating action.
func Reserve(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	var reserved []models.OrderItem
	for _, item := range items {
		var product models.Product
		err := database.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			return reserved, fmt.Errorf("load product %s: %w", item.ProductID.Hex(), err)
		}
		if err := ApplyReserve(&product, item.Quantity, item.Color, item.Size); err != nil {
			return reserved, err
		}
		if err := persist(ctx, &product); err != nil {
			return reserved, fmt.Errorf("update stock for %s: %w", product.Name, err)
		}
		reserved = append(reserved, item)
	}
	return reserved, nil
}

// Restore adds stock back for every item. Used both as the compensating
// action of a failed checkout and on order cancellation. Per-item failures
// are logged and do not abort the remaining items.
func Restore(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		var product models.Product
		err := database.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			log.Println("❌ Restore: failed to load product", item.ProductID.Hex(), ":", err)
			continue
		}
		if err := ApplyRestore(&product, item.Quantity, item.Color, item.Size); err != nil {
			log.Println("❌ Restore:", err)
			continue
		}
		if err := persist(ctx, &product); err != nil {
			log.Println("❌ Restore: failed to update stock for", product.Name, ":", err)
		}
	}
}

package inventory

import (
	"context"
	"log"
	"time"

	"marketplace/database"
	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StartIntegrityCheck runs a periodic scan that repairs aggregate stock on
// products with variants, keeping stock == sum(variant stocks) between
// mutations. It returns immediately; the scan stops when ctx is cancelled.
func StartIntegrityCheck(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := CheckIntegrity(ctx); err != nil {
					log.Println("❌ Stock integrity check failed:", err)
				} else if n > 0 {
					log.Printf("⚠️ Stock integrity check repaired %d product(s)", n)
				}
			}
		}
	}()
}

// CheckIntegrity recomputes aggregate stock from variant sums for every
// product that tracks variants and repairs any drift. Returns the number of
// products repaired.
func CheckIntegrity(ctx context.Context) (int, error) {
	scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(scanCtx, bson.M{
		"variants.0": bson.M{"$exists": true},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(scanCtx)

	repaired := 0
	for cursor.Next(scanCtx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			log.Println("⚠️ Integrity check: decode product:", err)
			continue
		}
		sum := product.VariantStockSum()
		if product.Stock == sum {
			continue
		}
		_, err := database.ProductCollection.UpdateOne(scanCtx,
			bson.M{"_id": product.ID},
			bson.M{"$set": bson.M{"stock": sum, "updatedAt": time.Now()}},
		)
		if err != nil {
			log.Println("⚠️ Integrity check: repair", product.Name, ":", err)
			continue
		}
		log.Printf("⚠️ Stock drift on %s: stored %d, variant sum %d", product.Name, product.Stock, sum)
		repaired++
	}
	return repaired, cursor.Err()
}

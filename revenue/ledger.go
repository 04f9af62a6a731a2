package revenue

import (
	"context"
	"log"
	"time"

	"marketplace/database"
	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The admin revenue figure is an append-only ledger of signed entries keyed
// by order id, never a mutable counter. Entering "confirmed" credits the
// order total; leaving "confirmed" through cancellation debits it. The
// current total is always the fold of the ledger, so it can be audited and
// replayed entry by entry.

// Credit appends a positive entry for an order entering confirmed status.
func Credit(ctx context.Context, orderID primitive.ObjectID, amount float64) error {
	return appendEntry(ctx, orderID, amount, models.RevenueReasonOrderConfirmed)
}

// Debit appends a negative entry for a confirmed order being cancelled.
func Debit(ctx context.Context, orderID primitive.ObjectID, amount float64) error {
	return appendEntry(ctx, orderID, -amount, models.RevenueReasonOrderCancelled)
}

func appendEntry(ctx context.Context, orderID primitive.ObjectID, amount float64, reason string) error {
	entry := models.RevenueEntry{
		ID:        primitive.NewObjectID(),
		OrderID:   orderID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	_, err := database.RevenueCollection.InsertOne(ctx, entry)
	return err
}

// Fold sums a slice of ledger entries.
func Fold(entries []models.RevenueEntry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// Total folds the whole ledger server-side.
func Total(ctx context.Context) (float64, error) {
	cursor, err := database.RevenueCollection.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// Entries returns the ledger rows for one order, newest first.
func Entries(ctx context.Context, orderID primitive.ObjectID) ([]models.RevenueEntry, error) {
	cursor, err := database.RevenueCollection.Find(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return nil, err
	}
	var entries []models.RevenueEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StartVerify runs Verify on a fixed interval until ctx is cancelled.
func StartVerify(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				Verify(ctx)
			}
		}
	}()
}

// Verify recomputes the total from orders that have entered confirmed status
// and logs any divergence from the ledger fold. Diagnostic only.
func Verify(ctx context.Context) {
	ledger, err := Total(ctx)
	if err != nil {
		log.Println("⚠️ Revenue verify: ledger total:", err)
		return
	}

	// Orders in or past confirmed keep their credit; only cancellation
	// (and the refund branch off it) debits the ledger.
	credited := []string{
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusReturned,
	}
	cursor, err := database.OrderCollection.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": credited}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}},
	})
	if err != nil {
		log.Println("⚠️ Revenue verify: confirmed orders:", err)
		return
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		log.Println("⚠️ Revenue verify: decode:", err)
		return
	}
	confirmed := 0.0
	if len(results) > 0 {
		confirmed = results[0].Total
	}
	if diff := ledger - confirmed; diff > 0.01 || diff < -0.01 {
		log.Printf("⚠️ Revenue drift: ledger %.2f vs confirmed orders %.2f", ledger, confirmed)
	}
}

package revenue

import (
	"testing"

	"marketplace/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func entry(orderID primitive.ObjectID, amount float64, reason string) models.RevenueEntry {
	return models.RevenueEntry{OrderID: orderID, Amount: amount, Reason: reason}
}

func TestFold_EmptyLedger(t *testing.T) {
	assert.Equal(t, 0.0, Fold(nil))
}

func TestFold_ConfirmThenCancelNetsZero(t *testing.T) {
	orderID := primitive.NewObjectID()
	ledger := []models.RevenueEntry{
		entry(orderID, 104.99, models.RevenueReasonOrderConfirmed),
		entry(orderID, -104.99, models.RevenueReasonOrderCancelled),
	}
	assert.InDelta(t, 0.0, Fold(ledger), 0.001)
}

func TestFold_EqualsConfirmedOrderTotals(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	// a confirmed, b confirmed then cancelled, c confirmed.
	ledger := []models.RevenueEntry{
		entry(a, 50.00, models.RevenueReasonOrderConfirmed),
		entry(b, 30.00, models.RevenueReasonOrderConfirmed),
		entry(c, 19.99, models.RevenueReasonOrderConfirmed),
		entry(b, -30.00, models.RevenueReasonOrderCancelled),
	}

	confirmedTotals := 50.00 + 19.99
	assert.InDelta(t, confirmedTotals, Fold(ledger), 0.001)
}

func TestFold_ReplayIsOrderIndependent(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	forward := []models.RevenueEntry{
		entry(a, 12.50, models.RevenueReasonOrderConfirmed),
		entry(b, 40.00, models.RevenueReasonOrderConfirmed),
		entry(a, -12.50, models.RevenueReasonOrderCancelled),
	}
	backward := []models.RevenueEntry{forward[2], forward[1], forward[0]}

	assert.InDelta(t, Fold(forward), Fold(backward), 0.001)
}

package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"marketplace/database"
	"marketplace/models"
	"marketplace/revenue"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadSellerOrder fetches an order owned by the authenticated seller. It
// writes the error response itself and returns false on failure.
func loadSellerOrder(ctx context.Context, c *gin.Context) (*models.Order, primitive.ObjectID, bool) {
	sellerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return nil, primitive.NilObjectID, false
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return nil, primitive.NilObjectID, false
	}

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "sellerId": sellerID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, primitive.NilObjectID, false
	}
	return &order, sellerID, true
}

// applyTransition moves an order to the target status with a timeline entry.
// The filter repeats the current status so concurrent transitions cannot
// both win.
func applyTransition(ctx context.Context, order *models.Order, to, note string, by primitive.ObjectID) (bool, error) {
	entry := models.TimelineEntry{
		Status: to,
		Date:   time.Now(),
		Note:   note,
		By:     by,
	}
	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID, "status": order.Status},
		bson.M{
			"$set":  bson.M{"status": to, "updatedAt": time.Now()},
			"$push": bson.M{"timeline": entry},
		})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// UpdateOrderStatus advances the pre-delivery flow: pending→placed (requires
// a confirmed payment) and placed→confirmed. Entering confirmed credits the
// revenue ledger with the order total.
func UpdateOrderStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, sellerID, ok := loadSellerOrder(ctx, c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	switch body.Status {
	case models.OrderStatusPlaced:
		if order.Status != models.OrderStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Cannot change status from %s to %s", order.Status, body.Status),
			})
			return
		}
		if !order.PaymentConfirmed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment has not been confirmed"})
			return
		}
	case models.OrderStatusConfirmed:
		if order.Status != models.OrderStatusPlaced {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Cannot change status from %s to %s", order.Status, body.Status),
			})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be placed or confirmed"})
		return
	}

	moved, err := applyTransition(ctx, order, body.Status, body.Note, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	if !moved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order status changed concurrently"})
		return
	}

	if body.Status == models.OrderStatusConfirmed {
		if err := revenue.Credit(ctx, order.ID, order.TotalAmount); err != nil {
			log.Println("❌ Failed to record revenue credit for order", order.ID.Hex(), ":", err)
		}
	}

	order.Status = body.Status
	publishStatus(order)

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "data": gin.H{
		"id":     order.ID.Hex(),
		"status": order.Status,
	}})
}

// UpdateDeliveryStatus enforces the delivery transition table:
// confirmed→{processing,shipped}, processing→{shipped},
// shipped→{delivered,returned}.
func UpdateDeliveryStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, sellerID, ok := loadSellerOrder(ctx, c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !models.CanTransitionDelivery(order.Status, body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot change status from %s to %s", order.Status, body.Status),
		})
		return
	}

	moved, err := applyTransition(ctx, order, body.Status, body.Note, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	if !moved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order status changed concurrently"})
		return
	}

	order.Status = body.Status
	publishStatus(order)

	c.JSON(http.StatusOK, gin.H{"message": "Delivery status updated", "data": gin.H{
		"id":     order.ID.Hex(),
		"status": order.Status,
	}})
}

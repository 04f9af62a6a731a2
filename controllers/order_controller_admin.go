package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"marketplace/database"
	"marketplace/models"
	"marketplace/revenue"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetOrdersAdmin(c *gin.Context) {
	listOrders(c, bson.M{})
}

func GetOrderByIDAdmin(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	// Ledger rows let the admin audit what this order contributed.
	entries, err := revenue.Entries(ctx, orderID)
	if err != nil {
		log.Println("⚠️ Failed to load revenue entries for order", orderID.Hex(), ":", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": gin.H{
		"order":   order,
		"revenue": entries,
	}})
}

// ApprovePayment marks the uploaded payment screenshot as reviewed. The
// seller can then move the order from pending to placed.
func ApprovePayment(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"paymentConfirmed": true, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve payment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment approved"})
}

// CreateRefund records a manual refund for a cancelled order. The request is
// multipart: amount/method/reason fields plus an optional screenshot image
// of the transfer. The unique index on refunds.orderId backs the
// one-refund-per-order rule, so a concurrent duplicate fails on insert
// rather than on the prior read.
func CreateRefund(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}
	method := c.PostForm("method")
	if method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Method is required"})
		return
	}
	reason := c.PostForm("reason")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refunds require a cancelled order"})
		return
	}
	if amount > order.TotalAmount+0.01 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refund amount exceeds order total"})
		return
	}

	screenshot := ""
	if file, err := c.FormFile("screenshot"); err == nil {
		screenshot, err = saveUpload(c, file, "refund")
		if err != nil {
			log.Println("⚠️ Failed to save refund screenshot:", err)
			screenshot = ""
		}
	}

	refund := models.Refund{
		ID:          primitive.NewObjectID(),
		OrderID:     orderID,
		Amount:      amount,
		Method:      method,
		Reason:      reason,
		Screenshot:  screenshot,
		ProcessedBy: adminID,
		CreatedAt:   time.Now(),
	}

	_, err = database.RefundCollection.InsertOne(ctx, refund)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order already has a refund"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refund"})
		return
	}

	// Terminal branch off cancelled; visible on the order's own timeline.
	moved, err := applyTransition(ctx, &order, models.OrderStatusRefunded, reason, adminID)
	if err != nil || !moved {
		log.Println("⚠️ Refund recorded but order", orderID.Hex(), "not moved to refunded:", err)
	} else {
		order.Status = models.OrderStatusRefunded
		publishStatus(&order)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Refund recorded", "data": refund})
}

// GetRevenue folds the revenue ledger. There is no stored counter to drift;
// the total is always recomputed from the signed entries.
func GetRevenue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := revenue.Total(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
		return
	}

	cursor, err := database.RevenueCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var entries []models.RevenueEntry
	if err := cursor.All(ctx, &entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": gin.H{
		"total":   total,
		"entries": entries,
	}})
}

package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"marketplace/config"
	"marketplace/database"
	"marketplace/events"
	"marketplace/inventory"
	"marketplace/models"
	"marketplace/revenue"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Events is the optional order-status publisher, set at startup. Nil means
// publishing is disabled.
var Events *events.Publisher

func publishStatus(order *models.Order) {
	Events.PublishStatus(events.OrderStatusEvent{
		OrderID:    order.ID.Hex(),
		BuyerID:    order.BuyerID.Hex(),
		SellerID:   order.SellerID.Hex(),
		Status:     order.Status,
		Total:      order.TotalAmount,
		OccurredAt: time.Now(),
	})
}

// CreateOrder handles buyer checkout. The request is multipart: an "order"
// field holding the JSON payload and an optional "paymentScreenshot" image.
//
// Stock is reserved before the order document is inserted; if the insert
// fails, every reserved item is restored. That compensating pair is the only
// coupling between the two writes, so a crash between them can at worst
// leave reserved stock without an order, never an order without reserved
// stock.
func CreateOrder(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	raw := c.PostForm("order")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order payload"})
		return
	}
	var payload orderPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
		return
	}

	if problems := validatePayload(&payload); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "detail": problems})
		return
	}

	sellerID, err := primitive.ObjectIDFromHex(payload.SellerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sellerId format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var seller models.User
	err = database.UserCollection.FindOne(ctx, bson.M{"_id": sellerID, "role": models.RoleSeller}).Decode(&seller)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Seller not found"})
		return
	}

	// Load and verify every item before touching any stock.
	var orderItems []models.OrderItem
	for _, item := range payload.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
			return
		}

		var product models.Product
		err = database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.SellerID != sellerID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product " + product.Name + " does not belong to this seller"})
			return
		}
		if status, msg := verifyItem(item, &product); status != 0 {
			c.JSON(status, gin.H{"error": msg})
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: productID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Color:     item.Color,
			Size:      item.Size,
		})
	}

	shippingFee := config.ShippingFee()
	if status, msg := verifyAmounts(&payload, orderItems, shippingFee); status != 0 {
		c.JSON(status, gin.H{"error": msg})
		return
	}

	billing := payload.BillingInfo
	if billing == (models.Address{}) {
		billing = payload.ShippingInfo
	}

	// Screenshot save is best-effort: a failed upload never blocks checkout.
	screenshot := ""
	if file, err := c.FormFile("paymentScreenshot"); err == nil {
		screenshot, err = saveUpload(c, file, "payment")
		if err != nil {
			log.Println("⚠️ Failed to save payment screenshot:", err)
			screenshot = ""
		}
	}

	reserved, err := inventory.Reserve(ctx, orderItems)
	if err != nil {
		inventory.Restore(ctx, reserved)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve stock", "detail": err.Error()})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:                primitive.NewObjectID(),
		BuyerID:           buyerID,
		SellerID:          sellerID,
		Items:             orderItems,
		Subtotal:          payload.Subtotal,
		ShippingFee:       shippingFee,
		TotalAmount:       payload.TotalAmount,
		PaymentMethod:     payload.PaymentMethod,
		PaymentScreenshot: screenshot,
		ShippingInfo:      payload.ShippingInfo,
		BillingInfo:       billing,
		Status:            models.OrderStatusPending,
		Timeline: []models.TimelineEntry{
			{Status: models.OrderStatusPending, Date: now, By: buyerID},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = database.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		inventory.Restore(ctx, reserved)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// Purchased items leave the cart; drift here is harmless.
	cleanupCart(ctx, buyerID, orderItems)

	publishStatus(&order)

	c.JSON(http.StatusOK, gin.H{"message": "Order created", "data": order})
}

func cleanupCart(ctx context.Context, buyerID primitive.ObjectID, items []models.OrderItem) {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	_, err := database.CartCollection.DeleteMany(ctx, bson.M{
		"buyerId":   buyerID,
		"productId": bson.M{"$in": ids},
	})
	if err != nil {
		log.Println("⚠️ Failed to clear cart items after checkout:", err)
	}
}

func GetBuyerOrders(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}
	listOrders(c, bson.M{"buyerId": buyerID})
}

func GetSellerOrders(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}
	listOrders(c, bson.M{"sellerId": sellerID})
}

// listOrders is an indexed query on the orders collection; no order
// reference arrays live on user documents.
func listOrders(c *gin.Context, filter bson.M) {
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.OrderCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": orders})
}

// CancelOrder lets the buyer cancel an order still in pending or confirmed
// status. Stock is always restored; the revenue ledger is debited only when
// the order had reached confirmed, because nothing was credited before that.
func CancelOrder(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&body)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "buyerId": buyerID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !models.Cancellable(order.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled from status " + order.Status})
		return
	}

	wasConfirmed := order.Status == models.OrderStatusConfirmed

	entry := models.TimelineEntry{
		Status: models.OrderStatusCancelled,
		Date:   time.Now(),
		Note:   body.Note,
		By:     buyerID,
	}
	// Filter repeats the status so a concurrent transition loses cleanly.
	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": order.Status},
		bson.M{
			"$set":  bson.M{"status": models.OrderStatusCancelled, "updatedAt": time.Now()},
			"$push": bson.M{"timeline": entry},
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled"})
		return
	}

	inventory.Restore(ctx, order.Items)

	if wasConfirmed {
		if err := revenue.Debit(ctx, order.ID, order.TotalAmount); err != nil {
			log.Println("❌ Failed to record revenue debit for order", order.ID.Hex(), ":", err)
		}
	}

	order.Status = models.OrderStatusCancelled
	publishStatus(&order)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"marketplace/database"
	"marketplace/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,gt=0"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if !product.Purchasable() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not available"})
		return
	}

	available := product.Stock
	if product.HasVariants() {
		i := product.FindVariant(body.Color, body.Size)
		if i < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Variant not found"})
			return
		}
		available = product.Variants[i].Stock
	}
	if body.Quantity > available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity exceeds available stock"})
		return
	}

	cartItem := models.CartItem{
		ID:        primitive.NewObjectID(),
		BuyerID:   buyerID,
		ProductID: productID,
		Quantity:  body.Quantity,
		Color:     body.Color,
		Size:      body.Size,
		CreatedAt: time.Now(),
	}

	_, err = database.CartCollection.InsertOne(ctx, cartItem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "data": gin.H{
		"cartId":    cartItem.ID,
		"productId": cartItem.ProductID,
		"quantity":  cartItem.Quantity,
		"color":     cartItem.Color,
		"size":      cartItem.Size,
		"product": gin.H{
			"name":  product.Name,
			"price": product.Price,
			"stock": available,
		},
		"subtotal": float64(cartItem.Quantity) * product.Price,
	}})
}

func GetCart(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.CartCollection.Find(ctx, bson.M{"buyerId": buyerID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var cartItems []models.CartItem
	if err := cursor.All(ctx, &cartItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var cartWithProducts []gin.H
	for _, item := range cartItems {
		var product models.Product
		err := database.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			continue
		}

		cartWithProducts = append(cartWithProducts, gin.H{
			"productId":   item.ProductID,
			"quantity":    item.Quantity,
			"color":       item.Color,
			"size":        item.Size,
			"productName": product.Name,
			"price":       product.Price,
			"total":       float64(item.Quantity) * product.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": cartWithProducts})
}

func UpdateCart(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.CartCollection.UpdateOne(ctx,
		bson.M{"buyerId": buyerID, "productId": productID},
		bson.M{"$set": bson.M{"quantity": body.Quantity}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func RemoveFromCart(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.CartCollection.DeleteOne(ctx,
		bson.M{"buyerId": buyerID, "productId": productID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from cart"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"marketplace/database"
	"marketplace/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateComplaint lets a buyer file a complaint on their own order. The
// request is multipart: subject/description fields plus an optional
// attachment image.
func CreateComplaint(c *gin.Context) {
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

	subject := c.PostForm("subject")
	description := c.PostForm("description")
	if subject == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and description are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "buyerId": buyerID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	attachment := ""
	if file, err := c.FormFile("attachment"); err == nil {
		attachment, err = saveUpload(c, file, "complaint")
		if err != nil {
			log.Println("⚠️ Failed to save complaint attachment:", err)
			attachment = ""
		}
	}

	complaint := models.Complaint{
		ID:          primitive.NewObjectID(),
		OrderID:     orderID,
		BuyerID:     buyerID,
		Subject:     subject,
		Description: description,
		Attachment:  attachment,
		Status:      models.ComplaintStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	_, err = database.ComplaintCollection.InsertOne(ctx, complaint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create complaint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint submitted", "data": complaint})
}

func GetBuyerComplaints(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}
	listComplaints(c, bson.M{"buyerId": buyerID})
}

func GetComplaintsAdmin(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	listComplaints(c, filter)
}

func listComplaints(c *gin.Context, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.ComplaintCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var complaints []models.Complaint
	if err := cursor.All(ctx, &complaints); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": complaints})
}

// ResolveComplaint closes an open complaint as resolved or rejected.
func ResolveComplaint(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var body struct {
		Status     string `json:"status" binding:"required"`
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.Status != models.ComplaintStatusResolved && body.Status != models.ComplaintStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be resolved or rejected"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.ComplaintCollection.UpdateOne(ctx,
		bson.M{"_id": complaintID, "status": models.ComplaintStatusOpen},
		bson.M{"$set": bson.M{
			"status":     body.Status,
			"resolution": body.Resolution,
			"resolvedBy": adminID,
			"updatedAt":  time.Now(),
		}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found or already closed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint " + body.Status})
}

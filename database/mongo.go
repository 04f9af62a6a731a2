package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

func ConnectMongo() {
	uri := os.Getenv("MONGO_URI")
	dbName := os.Getenv("DB_NAME")

	if uri == "" || dbName == "" {
		log.Fatal("❌ MONGO_URI or DB_NAME not set in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ MongoDB connection error:", err)
	}

	Client = client
	DB = client.Database(dbName)

	log.Println("✅ Connected to MongoDB")
}

var UserCollection *mongo.Collection
var ProductCollection *mongo.Collection
var OrderCollection *mongo.Collection
var CartCollection *mongo.Collection
var RefundCollection *mongo.Collection
var RevenueCollection *mongo.Collection
var ComplaintCollection *mongo.Collection

func InitCollections() {
	UserCollection = DB.Collection("users")
	ProductCollection = DB.Collection("products")
	OrderCollection = DB.Collection("orders")
	CartCollection = DB.Collection("carts")
	RefundCollection = DB.Collection("refunds")
	RevenueCollection = DB.Collection("revenue_entries")
	ComplaintCollection = DB.Collection("complaints")
}

// EnsureIndexes creates the indexes the query paths rely on. Buyer/seller
// order listings are index scans instead of denormalized reference arrays,
// and the unique refund index guarantees at most one refund per order.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{UserCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{OrderCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "buyerId", Value: 1}}},
			{Keys: bson.D{{Key: "sellerId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		}},
		{ProductCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "sellerId", Value: 1}}},
		}},
		{RevenueCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderId", Value: 1}}},
		}},
		{RefundCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{CartCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "buyerId", Value: 1}}},
		}},
	}

	for _, ix := range indexes {
		if _, err := ix.coll.Indexes().CreateMany(ctx, ix.models); err != nil {
			log.Println("⚠️ Failed to create indexes on", ix.coll.Name(), ":", err)
		}
	}
}

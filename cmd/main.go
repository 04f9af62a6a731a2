package main

import (
	"context"
	"time"

	"marketplace/config"
	"marketplace/controllers"
	"marketplace/database"
	"marketplace/events"
	"marketplace/inventory"
	"marketplace/revenue"
	"marketplace/routes"

	"github.com/gin-gonic/gin"
)

func main() {

	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()
	database.EnsureIndexes()

	controllers.Events = events.NewPublisher(config.GetEnvList("KAFKA_BROKERS"))
	defer controllers.Events.Close()

	interval := config.GetEnvDuration("STOCK_CHECK_INTERVAL", 15*time.Minute)
	inventory.StartIntegrityCheck(context.Background(), interval)
	revenue.StartVerify(context.Background(), interval)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}

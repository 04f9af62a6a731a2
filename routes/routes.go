package routes

import (
	"marketplace/controllers"
	"marketplace/middleware"
	"marketplace/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {

	api := r.Group("/api/v1")
	{
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.POST("/logout", controllers.Logout)

		api.GET("/products", controllers.GetProductsPublic)
		api.GET("/products/:id", controllers.GetProductByID)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			buyer := protected.Group("/")
			buyer.Use(middleware.RequireRole(models.RoleBuyer))
			{
				buyer.POST("/cart", controllers.AddToCart)
				buyer.GET("/cart", controllers.GetCart)
				buyer.PUT("/cart/:productId", controllers.UpdateCart)
				buyer.DELETE("/cart/:productId", controllers.RemoveFromCart)

				buyer.POST("/order/create", controllers.CreateOrder)
				buyer.GET("/order/buyer", controllers.GetBuyerOrders)
				buyer.PATCH("/order/:id/cancel", controllers.CancelOrder)

				buyer.POST("/order/:id/complaint", controllers.CreateComplaint)
				buyer.GET("/complaints", controllers.GetBuyerComplaints)
			}

			seller := protected.Group("/")
			seller.Use(middleware.RequireRole(models.RoleSeller))
			{
				seller.POST("/seller/products", controllers.CreateProduct)
				seller.PUT("/seller/products/:id", controllers.UpdateProduct)
				seller.DELETE("/seller/products/:id", controllers.DeleteProduct)
				seller.GET("/seller/products", controllers.GetSellerProducts)

				seller.GET("/order/seller", controllers.GetSellerOrders)
				seller.PATCH("/order/:id/status", controllers.UpdateOrderStatus)
				seller.PATCH("/order/:id/delivery", controllers.UpdateDeliveryStatus)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/products", controllers.GetProductsAdmin)
				admin.PATCH("/products/:id/approve", controllers.ApproveProduct)
				admin.PATCH("/products/:id/reject", controllers.RejectProduct)

				admin.GET("/orders", controllers.GetOrdersAdmin)
				admin.GET("/orders/:id", controllers.GetOrderByIDAdmin)
				admin.PATCH("/order/:id/payment", controllers.ApprovePayment)
				admin.POST("/order/:id/refund", controllers.CreateRefund)
				admin.GET("/revenue", controllers.GetRevenue)

				admin.GET("/complaints", controllers.GetComplaintsAdmin)
				admin.PATCH("/complaints/:id", controllers.ResolveComplaint)
			}
		}
	}
}

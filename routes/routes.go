package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rice-apps/rice-bikes-go/controllers"
	"github.com/rice-apps/rice-bikes-go/middlewares"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/register", controllers.Register)
		}

		protected := api.Group("/", middlewares.AuthMiddleware())
		{
			customers := protected.Group("/customers")
			{
				customers.GET("", controllers.GetAllCustomers)
				customers.GET("/:id", controllers.GetCustomerByID)
				customers.POST("", controllers.CreateCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
				customers.DELETE("/:id", controllers.DeleteCustomer)
			}

			items := protected.Group("/items")
			{
				items.GET("", controllers.GetAllItems)
				items.GET("/low-stock", controllers.GetLowStockItems)
				items.GET("/:id", controllers.GetItemByID)
				items.POST("", controllers.CreateItem)
				items.PUT("/:id", controllers.UpdateItem)
				items.PUT("/:id/stock", controllers.UpdateItemStock)
				items.DELETE("/:id", controllers.DeleteItem)
			}

			repairs := protected.Group("/repairs")
			{
				repairs.GET("", controllers.GetAllRepairs)
				repairs.GET("/:id", controllers.GetRepairByID)
				repairs.POST("", controllers.CreateRepair)
				repairs.PUT("/:id", controllers.UpdateRepair)
				repairs.DELETE("/:id", controllers.DeleteRepair)
			}

			bikes := protected.Group("/bikes")
			{
				bikes.GET("", controllers.GetAllBikes)
				bikes.GET("/:id", controllers.GetBikeByID)
				bikes.POST("", controllers.CreateBike)
				bikes.PUT("/:id", controllers.UpdateBike)
				bikes.DELETE("/:id", controllers.DeleteBike)
			}

			transactions := protected.Group("/transactions")
			{
				transactions.GET("", controllers.GetAllTransactions)
				transactions.GET("/:id", controllers.GetTransactionByID)
				transactions.POST("", controllers.CreateTransaction)
				transactions.PUT("/:id", controllers.UpdateTransaction)
				transactions.DELETE("/:id", controllers.DeleteTransaction)

				transactions.PUT("/:id/complete", controllers.CompleteTransaction)
				transactions.PUT("/:id/mark_paid", controllers.MarkTransactionPaid)

				transactions.POST("/:id/items", controllers.AddTransactionItem)
				transactions.DELETE("/:id/items/:lineId", controllers.RemoveTransactionItem)

				transactions.POST("/:id/repairs", controllers.AddTransactionRepair)
				transactions.PUT("/:id/repairs/:lineId", controllers.SetTransactionRepairCompleted)
				transactions.DELETE("/:id/repairs/:lineId", controllers.RemoveTransactionRepair)

				transactions.POST("/:id/bikes", controllers.AttachTransactionBike)
				transactions.DELETE("/:id/bikes/:bikeId", controllers.DetachTransactionBike)

				transactions.POST("/:id/order-requests", controllers.AddTransactionOrderRequest)
				transactions.DELETE("/:id/order-requests/:requestId", controllers.RemoveTransactionOrderRequest)
			}

			orders := protected.Group("/orders")
			{
				orders.GET("", controllers.GetAllOrders)
				orders.GET("/:id", controllers.GetOrderByID)
				orders.POST("", controllers.CreateOrder)
				orders.PUT("/:id", controllers.UpdateOrder)
				orders.DELETE("/:id", controllers.DeleteOrder)

				orders.PUT("/:id/status", controllers.SetOrderStatus)
				orders.PUT("/:id/freight-charge", controllers.SetOrderFreightCharge)
				orders.PUT("/:id/tracking-number", controllers.SetOrderTrackingNumber)

				orders.POST("/:id/order-requests", controllers.AssociateOrderRequest)
				orders.DELETE("/:id/order-requests/:requestId", controllers.DisassociateOrderRequest)
			}

			orderRequests := protected.Group("/order-requests")
			{
				orderRequests.GET("", controllers.GetAllOrderRequests)
				orderRequests.GET("/:id", controllers.GetOrderRequestByID)
				orderRequests.POST("", controllers.CreateOrderRequest)
				orderRequests.PUT("/:id", controllers.UpdateOrderRequest)
				orderRequests.DELETE("/:id", controllers.DeleteOrderRequest)
			}

			users := protected.Group("/users", middlewares.RequireAdmin())
			{
				users.GET("", controllers.GetAllUsers)
				users.GET("/:id", controllers.GetUserByID)
				users.POST("", controllers.CreateUser)
				users.PUT("/:id", controllers.UpdateUser)
				users.DELETE("/:id", controllers.DeleteUser)
			}
		}
	}
}

package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/controllers"
	"github.com/skva/kasse/live"
	"github.com/skva/kasse/middlewares"
)

// SetupRouter wires all routes. The limiter must be attached here, before
// any route registration: gin snapshots each route's handler chain when the
// route is added, so a Use() after registration never runs.
func SetupRouter(db *gorm.DB, hub *live.Hub, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	authCtrl := controllers.NewAuthController(db)
	productCtrl := controllers.NewProductController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	memberCtrl := controllers.NewMemberController(db)
	memberStateCtrl := controllers.NewMemberStateController(db)
	transactionCtrl := controllers.NewTransactionController(db, hub)
	itemCtrl := controllers.NewTransactionItemController(db)
	liveCtrl := controllers.NewLiveController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", authCtrl.Login)
		public.POST("/init-admin", authCtrl.InitAdmin)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/auth/logout", authCtrl.Logout)

	// CATALOG
	auth.GET("/products", productCtrl.GetAllProducts)
	auth.POST("/products", productCtrl.CreateProduct)
	auth.GET("/products/:id", productCtrl.GetProductByID)
	auth.PUT("/products/:id", productCtrl.UpdateProduct)
	auth.DELETE("/products/:id", productCtrl.DeleteProduct)

	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.GET("/categories/:id", categoryCtrl.GetCategoryByID)
	auth.PUT("/categories/:id", categoryCtrl.UpdateCategory)

	// MEMBER REGISTRY
	auth.GET("/members", memberCtrl.GetAllMembers)
	auth.POST("/members", memberCtrl.CreateMember)
	auth.GET("/members/:id", memberCtrl.GetMemberByID)
	auth.PUT("/members/:id", memberCtrl.UpdateMember)
	auth.DELETE("/members/:id", memberCtrl.DeleteMember)

	auth.GET("/member-states", memberStateCtrl.GetAllMemberStates)

	// TRANSACTIONS
	auth.GET("/transactions", transactionCtrl.GetAllTransactions)
	auth.GET("/transactions/open", transactionCtrl.GetOpenTransactions)
	auth.POST("/transactions", transactionCtrl.CreateTransaction)
	auth.GET("/transactions/:id", transactionCtrl.GetTransactionByID)
	auth.PUT("/transactions/:id/status", transactionCtrl.UpdateTransactionStatus)
	auth.DELETE("/transactions/:id", transactionCtrl.DeleteTransaction)
	auth.PUT("/transactions/items/:id", transactionCtrl.UpdateItemStatus)
	auth.POST("/transactions/items/:id/cancel", transactionCtrl.CancelItem)

	auth.GET("/transaction-items/by-transaction/:id", itemCtrl.GetItemsByTransaction)

	// LIVE TILL FEED (token via ?token= on the upgrade request)
	auth.GET("/ws/till", liveCtrl.TillSocket)

	return r
}

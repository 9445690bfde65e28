package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/controllers"
	"github.com/yeremiapane/hotel-billing-app/middlewares"
	"github.com/yeremiapane/hotel-billing-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi service & controller
	carts := services.NewCartStore()
	billSvc := services.NewBillService(db, carts)

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db, carts)
	billCtrl := controllers.NewBillController(db, billSvc)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// MENU (semua user boleh lihat)
	auth.GET("/menu-items", menuCtrl.GetAllMenuItems)
	auth.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)

	// CART / penyusunan bill (staff & admin)
	auth.GET("/cart", cartCtrl.GetCart)
	auth.POST("/cart/items", cartCtrl.AddToCart)
	auth.PATCH("/cart/items/:item_id", cartCtrl.UpdateCartItem)
	auth.DELETE("/cart/items/:item_id", cartCtrl.RemoveCartItem)
	auth.DELETE("/cart", cartCtrl.ClearCart)

	// BILLS: create + riwayat. Bill immutable, tidak ada update/delete.
	auth.POST("/bills", billCtrl.CreateBill)
	auth.GET("/bills", billCtrl.GetAllBills)
	auth.GET("/bills/:bill_id", billCtrl.GetBillByID)
	auth.GET("/bills/:bill_id/items", billCtrl.GetBillItems)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := auth.Group("/admin")
	admin.Use(middlewares.AdminOnly())

	admin.GET("/users", userCtrl.GetAllUsers)

	// Mutasi katalog menu hanya untuk admin
	admin.POST("/menu-items", menuCtrl.CreateMenuItem)
	admin.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
	admin.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

	admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}

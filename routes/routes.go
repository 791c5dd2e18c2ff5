package routes

import (
	"net/http"
	"time"

	"libraryapp_backend/app"
	"libraryapp_backend/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	bookCtl := controllers.NewBookController(s)
	copyCtl := controllers.NewCopyController(s)
	borrowerCtl := controllers.NewBorrowerController(s)
	checkoutCtl := controllers.NewCheckoutController(s)
	followUpCtl := controllers.NewFollowUpController(s)
	wishlistCtl := controllers.NewWishlistController(s)
	dashCtl := controllers.NewDashboardController(s)
	userCtl := controllers.NewUserController(s)

	authMW := app.AuthRequired(s.Repo, s.Cache)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// Health is the one unauthenticated route; orchestrators probe it.
	r.GET("/api/health", func(c *app.Ctx) {
		sqlDB, err := a.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.H{"status": "healthy", "database": "connected"})
	})

	api := r.Group("/api", authMW, seenMW)
	{
		api.GET("/user", userCtl.CurrentUser)

		books := api.Group("/books")
		{
			books.GET("", bookCtl.ListBooks)
			books.GET("/by-barcode/:barcode", bookCtl.GetBookByBarcode)
			books.GET("/:id", bookCtl.GetBook)
			books.GET("/:id/copies", copyCtl.ListBookCopies)
			books.POST("", bookCtl.CreateBook)
			books.PUT("/:id", bookCtl.UpdateBook)
			books.DELETE("/:id", bookCtl.DeleteBook)
		}

		copies := api.Group("/book-copies")
		{
			copies.POST("", copyCtl.CreateCopy)
			copies.PUT("/:id", copyCtl.UpdateCopy)
			copies.DELETE("/:id", copyCtl.DeleteCopy)
		}

		borrowers := api.Group("/borrowers")
		{
			borrowers.GET("", borrowerCtl.ListBorrowers)
			borrowers.GET("/autocomplete", borrowerCtl.Autocomplete)
			borrowers.GET("/:id", borrowerCtl.GetBorrower)
			borrowers.POST("", borrowerCtl.CreateBorrower)
			borrowers.PUT("/:id", borrowerCtl.UpdateBorrower)
			borrowers.DELETE("/:id", borrowerCtl.DeleteBorrower)
		}

		checkouts := api.Group("/checkouts")
		{
			checkouts.GET("", checkoutCtl.ListCheckouts)
			checkouts.POST("", checkoutCtl.CreateCheckout)
			checkouts.PUT("/:id/return", checkoutCtl.ReturnCheckout)
			checkouts.DELETE("/:id", checkoutCtl.DeleteCheckout)
		}
		api.GET("/checkout-history", checkoutCtl.CheckoutHistory)

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("", wishlistCtl.ListWishlist)
			wishlist.POST("", wishlistCtl.CreateWishlistItem)
			wishlist.PUT("/:id", wishlistCtl.UpdateWishlistItem)
			wishlist.DELETE("/:id", wishlistCtl.DeleteWishlistItem)
		}

		followUps := api.Group("/follow-ups")
		{
			followUps.GET("", followUpCtl.ListFollowUps)
			followUps.POST("", followUpCtl.CreateFollowUp)
			followUps.PUT("/:id", followUpCtl.UpdateFollowUp)
			followUps.DELETE("/:id", followUpCtl.DeleteFollowUp)
		}

		api.GET("/dashboard/stats", dashCtl.Stats)
	}
}

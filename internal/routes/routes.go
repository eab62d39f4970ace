package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/ecofind-golang/internal/handlers"
	"github.com/01moynul/ecofind-golang/internal/metrics"
	"github.com/01moynul/ecofind-golang/internal/middleware"
	"github.com/01moynul/ecofind-golang/internal/views"
)

// Options are the router settings that do not belong to a handler.
type Options struct {
	CORSAllowedOrigin string
}

func SetupRouter(h *handlers.Handlers, opts Options) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.Log))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(opts.CORSAllowedOrigin))

	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(views.Static()))
	router.Static("/uploads", h.UploadDir)

	// --- Ping & Metrics (no session) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	site := router.Group("/")
	site.Use(h.Sessions.Middleware())
	{
		// --- Public Routes ---
		site.GET("/", h.Home)
		site.GET("/product/:id", h.ProductDetail)

		site.GET("/register", h.ShowRegister)
		site.POST("/register", h.Register)
		site.GET("/login", h.ShowLogin)
		site.POST("/login", h.Login)
		site.GET("/logout", h.Logout)

		// --- Cart acknowledgement (JSON gate) ---
		site.POST("/add_to_cart/:id", middleware.RequireLoginJSON(), h.AddToCart)

		// --- Protected Routes (Login Required) ---
		auth := site.Group("/")
		auth.Use(middleware.RequireLogin())
		{
			auth.GET("/dashboard", h.Dashboard)
			auth.POST("/dashboard", h.UpdateProfile)

			auth.GET("/add_product", h.ShowAddProduct)
			auth.POST("/add_product", h.AddProduct)
			auth.GET("/my_listings", h.MyListings)
			auth.GET("/edit_product/:id", h.ShowEditProduct)
			auth.POST("/edit_product/:id", h.EditProduct)
			auth.POST("/delete_product/:id", h.DeleteProduct)

			auth.GET("/cart", h.ViewCart)
			auth.POST("/clear_cart", h.ClearCart)
			auth.POST("/checkout", h.Checkout)
			auth.GET("/previous_purchases", h.PreviousPurchases)

			auth.POST("/upload", h.UploadFile)
		}
	}

	return router, nil
}

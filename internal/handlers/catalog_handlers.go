package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/ecofind-golang/internal/models"
	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

// Home is the handler for GET /
// Query: ?category=<exact>&search=<substring of title>
func (h *Handlers) Home(c *gin.Context) {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, err := h.Store.ListActiveProducts(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, err, "Failed to load products")
		return
	}
	categories, err := h.Store.ListActiveCategories(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "Failed to load categories")
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"products":         products,
		"categories":       categories,
		"selectedCategory": filter.Category,
		"searchQuery":      filter.Search,
	})
}

// ProductDetail is the handler for GET /product/:id
func (h *Handlers) ProductDetail(c *gin.Context) {
	product, err := h.Store.GetActiveProduct(c.Request.Context(), paramID(c, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.redirectWithFlash(c, session.FlashDanger, "Product not found.", "/")
			return
		}
		h.serverError(c, err, "Failed to load product")
		return
	}

	h.render(c, http.StatusOK, "product_detail.html", gin.H{"title": product.Title, "product": product})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/ecofind-golang/internal/models"
	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

//
// --- Cart Handlers (session only, nothing touches the database until checkout) ---
//

// AddToCart is the handler for POST /add_to_cart/:id
// It answers JSON for the product page's script.
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Product must exist and be active ---
	product, err := h.Store.GetActiveProduct(c.Request.Context(), paramID(c, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}
		h.Log.WithError(err).Error("Failed to load product for cart")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not add item to cart."})
		return
	}

	// 2. --- Snapshot into the cart ---
	// Repeated adds make repeated lines.
	sess := session.From(c)
	sess.AddToCart(models.NewCartLine(product))
	h.saveSession(c, sess)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Item added to cart!",
		"cartCount": len(sess.Cart),
	})
}

// ViewCart is the handler for GET /cart
func (h *Handlers) ViewCart(c *gin.Context) {
	sess := session.From(c)
	cart := sess.Cart
	if cart == nil {
		cart = []models.CartLine{}
	}
	h.render(c, http.StatusOK, "cart.html", gin.H{
		"title": "Cart",
		"cart":  cart,
		"total": sess.CartTotal(),
	})
}

// ClearCart is the handler for POST /clear_cart
func (h *Handlers) ClearCart(c *gin.Context) {
	session.From(c).ClearCart()
	h.redirectWithFlash(c, session.FlashInfo, "Cart cleared.", "/cart")
}

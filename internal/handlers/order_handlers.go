package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/ecofind-golang/internal/metrics"
	"github.com/01moynul/ecofind-golang/internal/models"
	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

// Checkout is the handler for POST /checkout
// Every cart line becomes one purchase at its snapshot price, all in one
// transaction. On failure the cart is left exactly as it was.
func (h *Handlers) Checkout(c *gin.Context) {
	// 1. --- Get Buyer & Cart ---
	userID := currentUserID(c)
	sess := session.From(c)
	lines := sess.Cart

	// 2. --- Record Purchases ---
	err := h.Store.RecordPurchases(c.Request.Context(), userID, lines)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) {
			metrics.RecordCheckout(metrics.CheckoutEmptyCart, 0)
			h.redirectWithFlash(c, session.FlashWarning, "Your cart is empty.", "/cart")
			return
		}
		metrics.RecordCheckout(metrics.CheckoutFailed, 0)
		h.Log.WithError(err).WithField("userID", userID).Error("checkout failed")
		h.redirectWithFlash(c, session.FlashDanger, "An error occurred during checkout.", "/cart")
		return
	}

	// 3. --- Success ---
	metrics.RecordCheckout(metrics.CheckoutSuccess, len(lines))
	h.Log.WithFields(logrus.Fields{
		"userID": userID,
		"items":  len(lines),
		"total":  models.CartTotal(lines).StringFixed(2),
	}).Info("checkout completed")

	sess.ClearCart()
	h.redirectWithFlash(c, session.FlashSuccess, "Purchase successful! Thank you for shopping sustainably.", "/previous_purchases")
}

// PreviousPurchases is the handler for GET /previous_purchases
func (h *Handlers) PreviousPurchases(c *gin.Context) {
	purchases, err := h.Store.ListPurchases(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.serverError(c, err, "Failed to load purchases")
		return
	}
	if purchases == nil {
		purchases = []models.PurchaseDetail{}
	}
	h.render(c, http.StatusOK, "previous_purchases.html", gin.H{"title": "Previous purchases", "purchases": purchases})
}

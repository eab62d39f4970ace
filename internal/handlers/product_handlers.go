package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/ecofind-golang/internal/models"
	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

const msgNotYourProduct = "Product not found or you do not have permission to edit it."

// --- Inputs ---

// ProductInput is the add/edit listing form. Price arrives as text and is
// parsed into a decimal so no float ever touches money.
type ProductInput struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
	Category    string `form:"category" json:"category" binding:"required"`
	Price       string `form:"price" json:"price" binding:"required"`
	ImageURL    string `form:"image_url" json:"imageUrl"`
	Location    string `form:"location" json:"location"`
}

// fields validates the input and converts it to store fields.
func (in ProductInput) fields() (models.ProductFields, string) {
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return models.ProductFields{}, "Please enter a valid price."
	}

	f := models.ProductFields{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       price.Round(2),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if f.Title == "" || f.Category == "" {
		return models.ProductFields{}, msgFillForm
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		f.Location = &loc
	}
	return f, ""
}

// imageFromForm saves the optional "image" file. It returns "" when the
// form carries no file.
func (h *Handlers) imageFromForm(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.saveImage(c, file)
}

// ShowAddProduct is the handler for GET /add_product
func (h *Handlers) ShowAddProduct(c *gin.Context) {
	h.render(c, http.StatusOK, "add_product.html", gin.H{"title": "Sell an item"})
}

// AddProduct is the handler for POST /add_product
func (h *Handlers) AddProduct(c *gin.Context) {
	ownerID := currentUserID(c)

	// 1. --- Bind & Validate ---
	var input ProductInput
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "add_product.html", gin.H{"title": "Sell an item", "msg": msgFillForm})
		return
	}
	fields, msg := input.fields()
	if msg != "" {
		h.render(c, http.StatusBadRequest, "add_product.html", gin.H{"title": "Sell an item", "msg": msg})
		return
	}

	// 2. --- Optional Upload ---
	uploaded, err := h.imageFromForm(c)
	if err != nil {
		if errors.Is(err, errFileType) {
			h.render(c, http.StatusBadRequest, "add_product.html", gin.H{"title": "Sell an item", "msg": "Images must be png, jpg, jpeg or gif."})
			return
		}
		h.serverError(c, err, "Failed to save image")
		return
	}
	if uploaded != "" {
		fields.ImageURL = uploaded
	}

	// 3. --- Insert ---
	productID, err := h.Store.CreateProduct(c.Request.Context(), ownerID, fields)
	if err != nil {
		h.serverError(c, err, "Failed to create product")
		return
	}

	h.Log.WithFields(logrus.Fields{"userID": ownerID, "productID": productID}).Info("product listed")
	h.redirectWithFlash(c, session.FlashSuccess, "Product added successfully!", "/my_listings")
}

// MyListings is the handler for GET /my_listings
func (h *Handlers) MyListings(c *gin.Context) {
	products, err := h.Store.ListOwnedProducts(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.serverError(c, err, "Failed to load your listings")
		return
	}
	h.render(c, http.StatusOK, "my_listings.html", gin.H{"title": "My listings", "products": products})
}

// ShowEditProduct is the handler for GET /edit_product/:id
func (h *Handlers) ShowEditProduct(c *gin.Context) {
	product, err := h.Store.GetOwnedProduct(c.Request.Context(), paramID(c, "id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFoundOrForbidden) {
			h.redirectWithFlash(c, session.FlashDanger, msgNotYourProduct, "/my_listings")
			return
		}
		h.serverError(c, err, "Failed to load product")
		return
	}
	h.render(c, http.StatusOK, "edit_product.html", gin.H{"title": "Edit listing", "product": product})
}

// EditProduct is the handler for POST /edit_product/:id
func (h *Handlers) EditProduct(c *gin.Context) {
	ctx := c.Request.Context()
	productID := paramID(c, "id")
	ownerID := currentUserID(c)

	// 1. --- Ownership Check ---
	// Non-owners get the same answer as for a missing product.
	existing, err := h.Store.GetOwnedProduct(ctx, productID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFoundOrForbidden) {
			h.redirectWithFlash(c, session.FlashDanger, msgNotYourProduct, "/my_listings")
			return
		}
		h.serverError(c, err, "Failed to load product")
		return
	}

	// 2. --- Bind & Validate ---
	var input ProductInput
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "edit_product.html", gin.H{"title": "Edit listing", "product": existing, "msg": msgFillForm})
		return
	}
	fields, msg := input.fields()
	if msg != "" {
		h.render(c, http.StatusBadRequest, "edit_product.html", gin.H{"title": "Edit listing", "product": existing, "msg": msg})
		return
	}

	// 3. --- Image: upload > typed URL > keep current ---
	uploaded, err := h.imageFromForm(c)
	if err != nil {
		if errors.Is(err, errFileType) {
			h.render(c, http.StatusBadRequest, "edit_product.html", gin.H{"title": "Edit listing", "product": existing, "msg": "Images must be png, jpg, jpeg or gif."})
			return
		}
		h.serverError(c, err, "Failed to save image")
		return
	}
	switch {
	case uploaded != "":
		fields.ImageURL = uploaded
	case fields.ImageURL == "":
		fields.ImageURL = existing.ImageURL
	}

	// 4. --- Update ---
	if err := h.Store.UpdateProduct(ctx, productID, ownerID, fields); err != nil {
		if errors.Is(err, store.ErrNotFoundOrForbidden) {
			h.redirectWithFlash(c, session.FlashDanger, msgNotYourProduct, "/my_listings")
			return
		}
		h.serverError(c, err, "Failed to update product")
		return
	}

	h.redirectWithFlash(c, session.FlashSuccess, "Product updated successfully!", "/my_listings")
}

// DeleteProduct is the handler for POST /delete_product/:id
// Listings are deactivated, never removed, so purchase history keeps them.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	err := h.Store.SoftDeleteProduct(c.Request.Context(), paramID(c, "id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFoundOrForbidden) {
			h.redirectWithFlash(c, session.FlashDanger, msgNotYourProduct, "/my_listings")
			return
		}
		h.serverError(c, err, "Failed to delete product")
		return
	}

	h.redirectWithFlash(c, session.FlashSuccess, "Product deleted successfully!", "/my_listings")
}

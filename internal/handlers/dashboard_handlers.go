package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

type ProfileInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,marketemail"`
}

// Dashboard is the handler for GET /dashboard
func (h *Handlers) Dashboard(c *gin.Context) {
	user, err := h.Store.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account vanished under a live session.
			sess := session.From(c)
			sess.Logout()
			h.saveSession(c, sess)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.serverError(c, err, "Failed to load profile")
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{"title": "Dashboard", "profile": user})
}

// UpdateProfile is the handler for POST /dashboard
func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var input ProfileInput
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "dashboard.html", gin.H{
			"title":   "Dashboard",
			"msg":     formMessage(err),
			"profile": gin.H{"Username": input.Username, "Email": input.Email},
		})
		return
	}

	input.Email = normalizeEmail(input.Email)

	err := h.Store.UpdateProfile(c.Request.Context(), userID, input.Username, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.render(c, http.StatusConflict, "dashboard.html", gin.H{
				"title":   "Dashboard",
				"msg":     msgEmailInUse,
				"profile": gin.H{"Username": input.Username, "Email": input.Email},
			})
			return
		}
		h.serverError(c, err, "Failed to update profile")
		return
	}

	// Keep the session identity in step with the row.
	sess := session.From(c)
	sess.Identity.Username = input.Username
	sess.Identity.Email = input.Email
	h.redirectWithFlash(c, session.FlashSuccess, "Profile updated successfully!", "/dashboard")
}

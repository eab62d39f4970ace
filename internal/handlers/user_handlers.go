package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/ecofind-golang/internal/models"
	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

// --- User Registration ---

// RegisterInput is the registration form. It is separate from models.User
// because we never accept an id or a hash from the client.
type RegisterInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,marketemail"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ShowRegister is the handler for GET /register
func (h *Handlers) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"title": "Register"})
}

// Register is the handler for POST /register
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate Form ---
	var input RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "register.html", gin.H{
			"title":    "Register",
			"msg":      formMessage(err),
			"username": input.Username,
			"email":    input.Email,
		})
		return
	}

	input.Email = normalizeEmail(input.Email)

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		h.serverError(c, err, "Failed to hash password")
		return
	}

	// 3. --- Save to Database ---
	userID, err := h.Store.CreateUser(c.Request.Context(), input.Username, input.Email, password.Hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.render(c, http.StatusConflict, "register.html", gin.H{
				"title":    "Register",
				"msg":      msgAccountExists,
				"username": input.Username,
				"email":    input.Email,
			})
			return
		}
		h.serverError(c, err, "Failed to create user")
		return
	}

	h.Log.WithField("userID", userID).Info("user registered")
	h.redirectWithFlash(c, session.FlashSuccess, "You have successfully registered! Please login.", "/login")
}

// --- User Login ---

type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ShowLogin is the handler for GET /login
func (h *Handlers) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

// Login is the handler for POST /login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{
			"title": "Login",
			"msg":   msgFillForm,
			"email": input.Email,
		})
		return
	}

	input.Email = normalizeEmail(input.Email)

	// 1. --- Find User ---
	// Unknown email and wrong password share one message.
	user, err := h.Store.GetUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.render(c, http.StatusUnauthorized, "login.html", gin.H{"title": "Login", "msg": msgBadLogin, "email": input.Email})
			return
		}
		h.serverError(c, err, "Failed to look up user")
		return
	}

	// 2. --- Check Password ---
	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		h.serverError(c, err, "Failed to verify password")
		return
	}
	if !match {
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{"title": "Login", "msg": msgBadLogin, "email": input.Email})
		return
	}

	// 3. --- Start Session ---
	// A fresh id on login so a cookie planted before login is useless.
	sess := session.From(c)
	sess.Login(user.Identity())
	if err := h.Sessions.Renew(c, sess); err != nil {
		h.serverError(c, err, "Failed to start session")
		return
	}
	h.saveSession(c, sess)
	c.Redirect(http.StatusFound, "/")
}

// Logout is the handler for GET /logout. It is safe to call when not logged in.
func (h *Handlers) Logout(c *gin.Context) {
	sess := session.From(c)
	sess.Logout()
	h.saveSession(c, sess)
	c.Redirect(http.StatusFound, "/login")
}

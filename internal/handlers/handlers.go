package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store     *store.Store
	Sessions  *session.Manager
	Log       *logrus.Logger
	UploadDir string // where /upload and product forms save images
	BaseURL   string // public origin used in /upload responses
}

// render answers with the named template, or with the same data as JSON
// when the client asks for it. Pending flashes are consumed here.
func (h *Handlers) render(c *gin.Context, status int, page string, data gin.H) {
	sess := session.From(c)
	if data == nil {
		data = gin.H{}
	}
	if sess.LoggedIn() {
		data["user"] = sess.Identity
	}
	data["cartCount"] = len(sess.Cart)
	data["flashes"] = sess.TakeFlashes()
	h.saveSession(c, sess)

	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: page,
		HTMLData: data,
		JSONData: data,
	})
}

// redirectWithFlash queues a notice for the next page and redirects there.
func (h *Handlers) redirectWithFlash(c *gin.Context, category, message, location string) {
	sess := session.From(c)
	sess.AddFlash(category, message)
	h.saveSession(c, sess)
	c.Redirect(http.StatusFound, location)
}

// saveSession persists the session. A failed save only loses this
// request's session change, so it is logged rather than surfaced.
func (h *Handlers) saveSession(c *gin.Context, sess *session.Session) {
	if err := h.Sessions.Save(c, sess); err != nil {
		h.Log.WithError(err).WithField("route", c.FullPath()).Error("Failed to save session")
	}
}

// serverError logs err and sends a generic {"error": ...} body.
func (h *Handlers) serverError(c *gin.Context, err error, message string) {
	h.Log.WithError(err).WithField("route", c.FullPath()).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// currentUserID reads the id stored by the login middleware.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

// paramID parses a numeric path parameter. Anything else reads as 0,
// which never matches a row.
func paramID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/01moynul/ecofind-golang/internal/auth"
)

const contextKey = "session"

// Options configure the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager binds sessions to browsers through a signed cookie.
type Manager struct {
	store  Store
	tokens *auth.TokenIssuer
	opts   Options
}

func NewManager(store Store, tokens *auth.TokenIssuer, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "ecofind_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 72 * time.Hour
	}
	return &Manager{store: store, tokens: tokens, opts: opts}
}

// CookieName is the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.opts.CookieName
}

// Middleware loads the caller's session (or starts a new one) and stores
// it in the gin context for From.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.load(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		Set(c, sess)
		c.Next()
	}
}

// Set attaches sess to the request context.
func Set(c *gin.Context, sess *Session) {
	c.Set(contextKey, sess)
}

// From returns the session loaded by Middleware.
func From(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return &Session{}
	}
	sess, _ := v.(*Session)
	if sess == nil {
		return &Session{}
	}
	return sess
}

func (m *Manager) load(c *gin.Context) (*Session, error) {
	if raw, err := c.Cookie(m.opts.CookieName); err == nil && raw != "" {
		if id, err := m.tokens.ValidateToken(raw); err == nil {
			sess, found, err := m.store.Get(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			if found {
				return sess, nil
			}
			// Signed by us but never saved (or expired): keep the id.
			return &Session{ID: id}, nil
		}
	}
	return m.start(c)
}

func (m *Manager) start(c *gin.Context) (*Session, error) {
	sess := &Session{ID: uuid.NewString()}
	if err := m.setCookie(c, sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *Manager) setCookie(c *gin.Context, id string) error {
	token, err := m.tokens.GenerateToken(id)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, token, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
	return nil
}

// Save persists the session. Handlers call it before writing the response.
// An empty session is removed instead, so cookie-less traffic such as
// crawlers and health checks leaves nothing behind in the store.
func (m *Manager) Save(c *gin.Context, sess *Session) error {
	if sess.Empty() {
		return m.store.Delete(c.Request.Context(), sess.ID)
	}
	return m.store.Put(c.Request.Context(), sess, m.opts.TTL)
}

// Renew moves the session to a fresh id and cookie, discarding the old id.
// Used on login so a pre-login cookie cannot be reused.
func (m *Manager) Renew(c *gin.Context, sess *Session) error {
	if err := m.store.Delete(c.Request.Context(), sess.ID); err != nil {
		return err
	}
	sess.ID = uuid.NewString()
	return m.setCookie(c, sess.ID)
}

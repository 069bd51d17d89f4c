package api

import (
	"errors"
	"net/http"

	"cheese-shop/internal/auth"
	"cheese-shop/internal/catalog"
	"cheese-shop/internal/config"
	"cheese-shop/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Mailer is what the feedback handler needs from the mail layer.
type Mailer interface {
	SendFeedback(username, recipientEmail string) error
}

type Handlers struct {
	cfg      *config.Config
	users    *user.Store
	catalog  *catalog.Store
	sessions auth.SessionStore
	mailer   Mailer
	log      *logrus.Logger
}

func NewHandlers(cfg *config.Config, users *user.Store, cat *catalog.Store, sessions auth.SessionStore, mailer Mailer, log *logrus.Logger) *Handlers {
	return &Handlers{
		cfg:      cfg,
		users:    users,
		catalog:  cat,
		sessions: sessions,
		mailer:   mailer,
		log:      log,
	}
}

// ensureSession returns the id of the request's session, creating an
// anonymous one when the browser has none yet. Flash messages ride in the
// session, so even pre-login pages need one.
func (h *Handlers) ensureSession(c *gin.Context) string {
	if sessionID, err := c.Cookie(auth.SessionCookie); err == nil {
		if _, err := h.sessions.Get(c.Request.Context(), sessionID); err == nil {
			return sessionID
		}
	}
	sessionID, err := h.sessions.Create(c.Request.Context(), uuid.Nil, "")
	if err != nil {
		h.log.Errorf("create anonymous session: %v", err)
		return ""
	}
	h.setSessionCookie(c, sessionID)
	return sessionID
}

func (h *Handlers) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(auth.SessionCookie, sessionID, int(auth.SessionTTL.Seconds()), "/", "", false, true)
}

func (h *Handlers) flash(c *gin.Context, sessionID, kind, message string) {
	if sessionID == "" {
		return
	}
	if err := h.sessions.SetFlash(c.Request.Context(), sessionID, kind, message); err != nil {
		h.log.Errorf("set flash: %v", err)
	}
}

func (h *Handlers) popFlash(c *gin.Context, sessionID string) *auth.Flash {
	if sessionID == "" {
		return nil
	}
	fl, err := h.sessions.PopFlash(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Errorf("pop flash: %v", err)
		return nil
	}
	return fl
}

// sessionUser resolves the logged-in user for pages that render for both
// anonymous and authenticated visitors. Returns nil when anonymous.
func (h *Handlers) sessionUser(c *gin.Context) *user.User {
	sessionID, err := c.Cookie(auth.SessionCookie)
	if err != nil {
		return nil
	}
	data, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil || data.UserID == uuid.Nil {
		return nil
	}
	u, err := h.users.FindByID(data.UserID)
	if err != nil {
		return nil
	}
	return u
}

// Index renders the catalog listing.
func (h *Handlers) Index(c *gin.Context) {
	sessionID := h.ensureSession(c)
	cheeses, err := h.catalog.ListAll()
	if err != nil {
		h.log.Errorf("list catalog: %v", err)
		c.String(http.StatusInternalServerError, "catalog unavailable")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"cheeses": cheeses,
		"flash":   h.popFlash(c, sessionID),
		"user":    h.sessionUser(c),
	})
}

func (h *Handlers) LoginForm(c *gin.Context) {
	sessionID := h.ensureSession(c)
	c.HTML(http.StatusOK, "login.html", gin.H{"flash": h.popFlash(c, sessionID)})
}

type credentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login authenticates the posted credentials. An unknown username and a
// wrong password produce the same generic failure so the form never reveals
// which usernames exist.
func (h *Handlers) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"flash": &auth.Flash{Kind: "danger", Message: "You could not log in! Check your credentials."},
		})
		return
	}

	u, err := h.users.FindByUsername(form.Username)
	if err != nil || user.CheckPassword(u.PasswordHash, form.Password) != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"flash": &auth.Flash{Kind: "danger", Message: "You could not log in! Check your credentials."},
		})
		return
	}

	token, err := auth.GenerateToken(h.cfg.Server.SecretKey, u.ID, auth.TokenTTL)
	if err != nil {
		h.log.Errorf("generate token for %s: %v", u.Username, err)
		c.String(http.StatusInternalServerError, "login unavailable")
		return
	}

	// Fresh authenticated session; whatever session the browser held before
	// is discarded.
	if oldID, err := c.Cookie(auth.SessionCookie); err == nil {
		_ = h.sessions.Delete(c.Request.Context(), oldID)
	}
	newID, err := h.sessions.Create(c.Request.Context(), u.ID, token)
	if err != nil {
		h.log.Errorf("create session for %s: %v", u.Username, err)
		c.String(http.StatusInternalServerError, "login unavailable")
		return
	}
	h.setSessionCookie(c, newID)
	h.flash(c, newID, "success", "You have logged in!")
	h.log.Infof("User logged in: %s", u.Username)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handlers) RegisterForm(c *gin.Context) {
	sessionID := h.ensureSession(c)
	c.HTML(http.StatusOK, "register.html", gin.H{"flash": h.popFlash(c, sessionID)})
}

func (h *Handlers) Register(c *gin.Context) {
	sessionID := h.ensureSession(c)

	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"flash": &auth.Flash{Kind: "danger", Message: "Username and password are required."},
		})
		return
	}

	if _, err := h.users.Create(form.Username, form.Password); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"flash": &auth.Flash{Kind: "danger", Message: "This username is already taken."},
			})
			return
		}
		h.log.Errorf("register %s: %v", form.Username, err)
		c.String(http.StatusInternalServerError, "registration unavailable")
		return
	}

	h.flash(c, sessionID, "success", "Registration successful! You can now log in.")
	h.log.Infof("User registered: %s", form.Username)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handlers) Profile(c *gin.Context) {
	sessionID := c.GetString(auth.CtxSessionID)
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":  auth.CurrentUser(c),
		"flash": h.popFlash(c, sessionID),
	})
}

type feedbackForm struct {
	Email string `form:"email" binding:"required,email"`
}

// SubmitFeedback sends the feedback mail and re-renders the profile with the
// outcome. Mail failures are logged and shown as a generic notice; they never
// touch the session or auth state.
func (h *Handlers) SubmitFeedback(c *gin.Context) {
	u := auth.CurrentUser(c)

	var form feedbackForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"user":  u,
			"flash": &auth.Flash{Kind: "danger", Message: "Please enter a valid email address."},
		})
		return
	}

	if err := h.mailer.SendFeedback(u.Username, form.Email); err != nil {
		h.log.Errorf("send feedback for %s: %v", u.Username, err)
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"user":  u,
			"flash": &auth.Flash{Kind: "danger", Message: "Something went wrong while sending!"},
		})
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":  u,
		"flash": &auth.Flash{Kind: "success", Message: "Message sent successfully!"},
	})
}

// Logout destroys the session. The access token that rode in it stays valid
// until its own expiry; there is no revocation list.
func (h *Handlers) Logout(c *gin.Context) {
	sessionID := c.GetString(auth.CtxSessionID)
	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		h.log.Errorf("delete session: %v", err)
	}
	newID, err := h.sessions.Create(c.Request.Context(), uuid.Nil, "")
	if err == nil {
		h.setSessionCookie(c, newID)
		h.flash(c, newID, "success", "You have logged out!")
	}
	c.Redirect(http.StatusFound, "/")
}

// CheeseAPI answers the token-gated JSON listing. Elements carry exactly
// name, description and image_path.
func (h *Handlers) CheeseAPI(c *gin.Context) {
	cheeses, err := h.catalog.ListAll()
	if err != nil {
		h.log.Errorf("list catalog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, cheeses)
}

package api

import (
	"path/filepath"

	"cheese-shop/internal/auth"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the shop's routes. Browser-facing pages sit behind the
// session guard, the JSON API behind the token guard; everything else is
// public.
func SetupRouter(h *Handlers) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(filepath.Join(h.cfg.Server.TemplateFolder, "*.html"))

	r.GET("/", h.Index)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)

	sessionAuth := auth.SessionRequired(h.sessions, h.users)
	r.GET("/profile", sessionAuth, h.Profile)
	r.POST("/profile", sessionAuth, h.SubmitFeedback)
	r.GET("/logout", sessionAuth, h.Logout)

	r.GET("/cheese/api", auth.TokenRequired(h.cfg.Server.SecretKey, h.sessions), h.CheeseAPI)

	return r
}

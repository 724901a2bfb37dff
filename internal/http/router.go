package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/internal/http/handlers"
	"github.com/you/pomodorosvc/internal/http/middleware"
)

func BuildRouter(logger zerolog.Logger, ah *handlers.AuthHandlers, sh *handlers.SettingsHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.TraceMiddleware(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/login/access-token", ah.Refresh)
	auth.POST("/logout", ah.Logout)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.GET("/user/timer", sh.Get)
	v.PUT("/user/timer", sh.Update)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}

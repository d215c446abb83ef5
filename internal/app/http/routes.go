package routes

import (
	adminapi "inventory-app/internal/api/admin"
	artworksapi "inventory-app/internal/api/artworks"
	authapi "inventory-app/internal/api/auth"
	chatapi "inventory-app/internal/api/chat"
	editionsapi "inventory-app/internal/api/editions"
	exportapi "inventory-app/internal/api/export"
	locationsapi "inventory-app/internal/api/locations"
	queryapi "inventory-app/internal/api/query"
	"inventory-app/internal/api/users"
	"inventory-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterQueryRoutes wires the external read-only surface. It answers
// any origin with its own wildcard CORS headers, so it must be
// registered BEFORE the first-party CORS middleware is installed on the
// engine; otherwise foreign-origin preflights are rejected before the
// handler runs.
func RegisterQueryRoutes(r *gin.Engine) {
	r.OPTIONS("/api/query", queryapi.Preflight)
	r.POST("/api/query", middleware.RequireAPIKey(), queryapi.Query)
}

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ✅ Apply input sanitization to public routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.PUT("/me/locale", users.UpdateLocale)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/artworks", artworksapi.ListArtworks)
	auth.GET("/artworks/:id", artworksapi.GetArtworkByID)
	auth.POST("/artworks", artworksapi.CreateArtwork)
	auth.PUT("/artworks/:id", artworksapi.UpdateArtwork)
	auth.DELETE("/artworks/:id", artworksapi.DeleteArtwork)

	auth.POST("/artworks/:id/editions", editionsapi.CreateEdition)
	auth.PUT("/editions/:id", editionsapi.UpdateEdition)
	auth.DELETE("/editions/:id", editionsapi.DeleteEdition)
	auth.GET("/editions/:id/history", editionsapi.GetEditionHistory)

	auth.GET("/locations", locationsapi.ListLocations)
	auth.POST("/locations", locationsapi.CreateLocation)
	auth.PUT("/locations/:id", locationsapi.UpdateLocation)
	auth.DELETE("/locations/:id", locationsapi.DeleteLocation)

	auth.POST("/chat", chatapi.Chat)
	auth.POST("/export", exportapi.ExportArtworks)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.GET("/stats", adminapi.GetAdminStats)
}

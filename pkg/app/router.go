package app

import (
	"os"
	"path/filepath"

	internalApp "chmfc/internal/app"
	"chmfc/pkg/middleware"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// RegisterRoutes configures all application routes. publicDir holds the
// built frontend; the admin console lives under publicDir/admin.
func RegisterRoutes(pb core.App, c *internalApp.Container, publicDir string) {
	pb.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(middleware.LoadSession(c.AuthService))

		// ---------------------------------------------------------
		// 1. SERVICE WORKERS
		// ---------------------------------------------------------

		// Firebase Messaging Service Worker must sit at the root
		se.Router.GET("/firebase-messaging-sw.js", func(e *core.RequestEvent) error {
			e.Response.Header().Set("Content-Type", "application/javascript")
			e.Response.Header().Set("Service-Worker-Allowed", "/")
			return e.FileFS(os.DirFS(publicDir), "firebase-messaging-sw.js")
		})

		se.Router.GET("/manifest.json", func(e *core.RequestEvent) error {
			e.Response.Header().Set("Content-Type", "application/json")
			e.Response.Header().Set("Cache-Control", "no-cache")
			return e.FileFS(os.DirFS(publicDir), "manifest.json")
		})

		// ---------------------------------------------------------
		// 2. PUBLIC API
		// ---------------------------------------------------------
		public := c.PublicHandler
		se.Router.GET("/api/home", public.Home)
		se.Router.GET("/api/news", public.News)
		se.Router.GET("/api/news/{id}", public.Article)
		se.Router.GET("/api/schedule", public.Schedule)
		se.Router.GET("/api/standings", public.Standings)
		se.Router.GET("/api/roster", public.Roster)
		se.Router.GET("/api/roster/compare", public.Compare)
		se.Router.GET("/api/roster/{id}", public.Player)
		se.Router.GET("/api/store", public.Store)
		se.Router.GET("/api/events", public.Events)
		se.Router.GET("/api/polls", public.Polls)
		se.Router.GET("/api/live/{collection}", c.LiveHandler.StreamPublic)

		// ---------------------------------------------------------
		// 3. AUTH ROUTES
		// ---------------------------------------------------------
		auth := c.AuthHandler
		se.Router.POST("/api/auth/signup", auth.SignUp)
		se.Router.POST("/api/auth/login", auth.Login)
		se.Router.GET("/api/auth/session", auth.Session)
		se.Router.GET("/logout", auth.Logout)
		se.Router.POST("/logout", auth.Logout)

		// ---------------------------------------------------------
		// 4. SIGNED-IN FAN ROUTES
		// ---------------------------------------------------------
		fan := se.Router.Group("/api")
		fan.BindFunc(middleware.RequireAuth())

		fan.GET("/profile", auth.Profile)
		fan.PATCH("/profile", auth.UpdateProfile)
		fan.GET("/orders", c.FanHandler.MyOrders)
		fan.POST("/orders", c.FanHandler.PlaceOrder)
		fan.POST("/polls/{id}/vote", c.FanHandler.Vote)
		fan.POST("/fcm/topics/polls", c.FanHandler.SubscribePolls)

		// ---------------------------------------------------------
		// 5. ADMIN ROUTES (Protected)
		// ---------------------------------------------------------
		adminGroup := se.Router.Group("/admin")
		adminGroup.BindFunc(middleware.RequireAdmin())

		admin := c.AdminHandler
		adminGroup.GET("/api/dashboard", admin.Dashboard)

		adminGroup.GET("/api/news", admin.ListNews)
		adminGroup.POST("/api/news", admin.SaveNews)
		adminGroup.POST("/api/news/draft", admin.DraftNews)
		adminGroup.GET("/api/news/{id}", admin.GetNews)
		adminGroup.PUT("/api/news/{id}", admin.SaveNews)
		adminGroup.DELETE("/api/news/{id}", admin.DeleteNews)

		adminGroup.GET("/api/matches", admin.ListMatches)
		adminGroup.POST("/api/matches", admin.SaveMatch)
		adminGroup.PUT("/api/matches/{id}", admin.SaveMatch)
		adminGroup.DELETE("/api/matches/{id}", admin.DeleteMatch)
		adminGroup.GET("/api/matches/{id}/highlights", admin.MatchHighlights)

		adminGroup.GET("/api/highlights", admin.ListHighlights)
		adminGroup.POST("/api/highlights", admin.AddHighlight)
		adminGroup.DELETE("/api/highlights/{id}", admin.DeleteHighlight)

		adminGroup.GET("/api/players", admin.ListPlayers)
		adminGroup.POST("/api/players", admin.SavePlayer)
		adminGroup.GET("/api/players/{id}", admin.GetPlayer)
		adminGroup.PUT("/api/players/{id}", admin.SavePlayer)
		adminGroup.PUT("/api/players/{id}/stats", admin.UpdatePlayerStats)
		adminGroup.DELETE("/api/players/{id}", admin.DeletePlayer)

		adminGroup.GET("/api/standings", admin.ListStandings)
		adminGroup.POST("/api/standings", admin.SaveStanding)
		adminGroup.PUT("/api/standings/{id}", admin.SaveStanding)
		adminGroup.DELETE("/api/standings/{id}", admin.DeleteStanding)

		adminGroup.GET("/api/products", admin.ListProducts)
		adminGroup.POST("/api/products", admin.SaveProduct)
		adminGroup.PUT("/api/products/{id}", admin.SaveProduct)
		adminGroup.DELETE("/api/products/{id}", admin.DeleteProduct)

		adminGroup.GET("/api/orders", admin.ListOrders)
		adminGroup.POST("/api/orders/{id}/status", admin.UpdateOrderStatus)

		adminGroup.GET("/api/events", admin.ListEvents)
		adminGroup.POST("/api/events", admin.SaveEvent)
		adminGroup.PUT("/api/events/{id}", admin.SaveEvent)
		adminGroup.DELETE("/api/events/{id}", admin.DeleteEvent)

		adminGroup.GET("/api/polls", admin.ListPolls)
		adminGroup.POST("/api/polls", admin.CreatePoll)
		adminGroup.GET("/api/polls/matches", admin.PollMatches)
		adminGroup.GET("/api/polls/{id}", admin.PollResults)
		adminGroup.POST("/api/polls/{id}/toggle", admin.TogglePoll)
		adminGroup.DELETE("/api/polls/{id}", admin.DeletePoll)

		adminGroup.GET("/api/users", admin.ListUsers)
		adminGroup.PUT("/api/users/{id}", admin.UpdateUser)
		adminGroup.DELETE("/api/users/{id}", admin.DeleteUser)

		adminGroup.GET("/api/settings", admin.PaymentSettings)
		adminGroup.PUT("/api/settings", admin.SavePaymentSettings)

		adminGroup.GET("/api/live/{collection}", c.LiveHandler.StreamAdmin)

		// FCM Token
		adminGroup.POST("/api/fcm/token", admin.RegisterDeviceToken)

		// Admin console pages, /admin/dashboard included
		adminGroup.GET("/{path...}", apis.Static(os.DirFS(filepath.Join(publicDir, "admin")), true))

		// ---------------------------------------------------------
		// 6. FRONTEND (catch all)
		// ---------------------------------------------------------
		se.Router.GET("/{path...}", apis.Static(os.DirFS(publicDir), true))

		return se.Next()
	})
}

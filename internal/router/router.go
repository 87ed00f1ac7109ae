package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/handler"
	"github.com/brightwood-pta/portal/internal/middleware"
	"github.com/brightwood-pta/portal/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints.  Register, login, refresh
// and logout live under /v1/auth and need no session; /v1/me and the admin
// role grant sit behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)

	admin := e.Group("/v1/users")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.PUT("/role", a.SetRole)
}

// RegisterVolunteer wires the volunteer portal.
//
// The events read path is public but runs OptionalJWT so elevated callers can
// get signups nested.  Signup mutations are gated to admin|editor.  Shift
// mutations only require authentication, with no role check; that mirrors the
// admin tool this API replaced.
func RegisterVolunteer(e *echo.Echo, ev *handler.VolunteerEventHandler, sh *handler.ShiftHandler, sg *handler.SignupHandler, jwtSecret string) {
	e.GET("/v1/volunteer-events", ev.List, middleware.OptionalJWT(jwtSecret))

	e.GET("/v1/volunteer-shifts", sh.List)
	e.GET("/v1/volunteer-shifts/:id", sh.Get)
	shifts := e.Group("/v1/volunteer-shifts")
	shifts.Use(middleware.JWTAuth(jwtSecret))
	shifts.POST("", sh.Create)
	shifts.PUT("", sh.Update)
	shifts.DELETE("", sh.Delete)

	signups := e.Group("/v1/volunteer-signups")
	signups.Use(middleware.JWTAuth(jwtSecret))
	signups.Use(middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	signups.POST("", sg.Create)
	signups.PUT("", sg.UpdateStatus)
	signups.DELETE("", sg.Delete)
}

// RegisterContent wires the public-site content: posts, calendar events,
// donor listings, auction catalog and the document library.  Reads are
// public (OptionalJWT so elevated callers see drafts and hidden rows);
// mutations are admin|editor.
func RegisterContent(e *echo.Echo, p *handler.PostHandler, ev *handler.EventHandler, d *handler.DonorHandler, a *handler.AuctionHandler, doc *handler.DocumentHandler, jwtSecret string) {
	opt := middleware.OptionalJWT(jwtSecret)
	elevated := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleEditor),
	}

	e.GET("/v1/posts", p.List, opt)
	e.GET("/v1/posts/:id", p.Get, opt)
	posts := e.Group("/v1/posts", elevated...)
	posts.POST("", p.Create)
	posts.PUT("", p.Update)
	posts.DELETE("", p.Delete)

	events := e.Group("/v1/events", elevated...)
	events.GET("", ev.List)
	events.GET("/:id", ev.Get)
	events.POST("", ev.Create)
	events.PUT("", ev.Update)
	events.DELETE("", ev.Delete)

	e.GET("/v1/donors", d.List, opt)
	donors := e.Group("/v1/donors", elevated...)
	donors.POST("", d.Create)
	donors.PUT("", d.Update)
	donors.DELETE("", d.Delete)

	e.GET("/v1/auction-items", a.List, opt)
	auction := e.Group("/v1/auction-items", elevated...)
	auction.POST("", a.Create)
	auction.PUT("", a.Update)
	auction.DELETE("", a.Delete)

	e.GET("/v1/documents", doc.List)
	e.GET("/v1/documents/:id/download", doc.Download)
	docs := e.Group("/v1/documents", elevated...)
	docs.POST("", doc.Upload)
	docs.DELETE("", doc.Delete)
}

// RegisterDonations wires the donation flow.  Checkout and confirm are
// public (confirm is the provider's callback); the admin listing is
// role-gated; receipts are public by donation id, which is fine because the
// id alone fetches nothing unless the donation is paid.
func RegisterDonations(e *echo.Echo, d *handler.DonationHandler, jwtSecret string) {
	e.POST("/v1/donations/checkout", d.Checkout)
	e.POST("/v1/donations/confirm", d.Confirm)
	e.GET("/v1/donations/:id/receipt", d.Receipt)

	admin := e.Group("/v1/donations")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("", d.List)
}

package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/ucrs/court-reservation/internal/handler"
	"github.com/ucrs/court-reservation/internal/middleware"
)

// RegisterRoutes registers routes that need no handler state.  Currently
// that is only the health check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterReservations registers the calendar's reservation endpoints.
// All of them are public; the application trusts its closed user group and
// gates nothing here.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler) {
	g := e.Group("/v1/reservations")
	g.GET("", h.List)
	g.GET("/date/:date", h.ListByDate)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/join", h.Join)
}

// RegisterMembers registers the member-directory endpoint backing the
// front end's name autocomplete.
func RegisterMembers(e *echo.Echo, h *handler.MemberHandler) {
	e.GET("/v1/members", h.List)
}

// RegisterSpecialEvents registers the special-event marker endpoints.
// Listing and creation are public; deletion requires an admin token.
func RegisterSpecialEvents(e *echo.Echo, h *handler.SpecialEventHandler, jwtSecret string) {
	g := e.Group("/v1/special-events")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.DELETE("/:id", h.Delete, middleware.AdminAuth(jwtSecret))
}

// RegisterAdmin registers the admin login endpoint that exchanges the
// shared password for a token.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler) {
	e.POST("/v1/admin/login", h.Login)
}

// RegisterLine registers the LINE platform webhook and the contact-form
// relay.  The webhook authenticates with the channel signature rather
// than middleware, so both routes are registered without any.
func RegisterLine(e *echo.Echo, wh *handler.WebhookHandler, ch *handler.ContactHandler) {
	e.GET("/v1/line/webhook", wh.Verify)
	e.POST("/v1/line/webhook", wh.Receive)
	e.POST("/v1/contact", ch.Send)
}

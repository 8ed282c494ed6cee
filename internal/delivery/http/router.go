package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"centroespirita/internal/delivery/http/controllers"
	"centroespirita/internal/delivery/http/middleware"
	"centroespirita/internal/domain"
)

// Controllers groups the controllers the router wires up.
type Controllers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Attendances *controllers.AttendanceController
	Events      *controllers.EventController
	Calendar    *controllers.CalendarController
}

// NewRouter initializes the HTTP router with all application routes.
// Reads are public; mutations require authentication, and scheduling
// mutations require the admin role.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireAdmin(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", c.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", c.Auth.Logout)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.Users.GetMe))
	mux.HandleFunc("PUT /users/me", auth(c.Users.UpdateMe))
	mux.HandleFunc("GET /users", admin(c.Users.List))
	mux.HandleFunc("GET /users/{userID}", admin(c.Users.GetByID))

	// Attendances
	mux.HandleFunc("GET /attendances", c.Attendances.List)
	mux.HandleFunc("GET /attendances/capacity", c.Attendances.Capacity)
	mux.HandleFunc("GET /attendances/standard-times", c.Attendances.StandardTimes)
	mux.HandleFunc("POST /attendances/suggestions", c.Attendances.Suggestions)
	mux.HandleFunc("GET /attendances/{attendanceID}", c.Attendances.GetByID)
	mux.HandleFunc("POST /attendances", admin(c.Attendances.Create))
	mux.HandleFunc("PUT /attendances/{attendanceID}/occurrence", admin(c.Attendances.Reschedule))
	mux.HandleFunc("PATCH /attendances/{attendanceID}", admin(c.Attendances.Update))
	mux.HandleFunc("DELETE /attendances/{attendanceID}", admin(c.Attendances.Deactivate))

	// Events
	mux.HandleFunc("GET /events", c.Events.List)
	mux.HandleFunc("GET /events/next-available", c.Events.NextAvailable)
	mux.HandleFunc("POST /events/suggestions", c.Events.Suggestions)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetByID)
	mux.HandleFunc("POST /events", admin(c.Events.Create))
	mux.HandleFunc("PATCH /events/{eventID}", admin(c.Events.Update))
	mux.HandleFunc("PUT /events/{eventID}/occurrence", admin(c.Events.Reschedule))
	mux.HandleFunc("DELETE /events/{eventID}", admin(c.Events.Deactivate))

	// Calendar feed
	mux.HandleFunc("GET /calendar.ics", c.Calendar.Feed)

	// Observability
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

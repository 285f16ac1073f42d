package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetpoint/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes. Every
// mutating route passes through requireMember; reading a single event is
// open.
func NewRouter(eventController *controllers.EventController, requireMember func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /events", requireMember(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("PUT /events/{eventID}", requireMember(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireMember(eventController.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/invite", requireMember(eventController.InviteMember))
	mux.HandleFunc("DELETE /events/{eventID}/exit", requireMember(eventController.ExitEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

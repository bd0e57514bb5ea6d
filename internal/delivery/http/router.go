package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"vacationbooking/internal/delivery/http/controllers"
	"vacationbooking/internal/delivery/http/helpers"
	"vacationbooking/internal/delivery/http/middleware"
	"vacationbooking/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Everything except signup, login, health, and swagger requires a Bearer token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	vacationController *controllers.VacationController,
	activityController *controllers.ActivityController,
	invitationController *controllers.InvitationController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Vacations
	mux.HandleFunc("POST /vacations", auth(vacationController.Create))
	mux.HandleFunc("GET /vacations", auth(vacationController.List))
	mux.HandleFunc("GET /vacations/{vacationID}", auth(vacationController.GetByID))
	mux.HandleFunc("POST /vacations/{vacationID}/publish", auth(vacationController.Publish))
	mux.HandleFunc("GET /vacations/{vacationID}/members", auth(vacationController.Members))

	// Invitations
	mux.HandleFunc("POST /vacations/{vacationID}/invitations", auth(invitationController.Invite))
	mux.HandleFunc("GET /vacations/{vacationID}/invitations", auth(invitationController.List))
	mux.HandleFunc("POST /invitations/{invitationID}/accept", auth(invitationController.Accept))

	// Activities
	mux.HandleFunc("POST /vacations/{vacationID}/activities", auth(activityController.AddBatch))
	mux.HandleFunc("GET /vacations/{vacationID}/activities", auth(activityController.List))
	mux.HandleFunc("GET /vacations/{vacationID}/planning", auth(activityController.Planning))
	mux.HandleFunc("POST /activities/{activityID}/plan", auth(activityController.Plan))

	// Stats
	mux.HandleFunc("GET /stats/headcount", auth(vacationController.Headcount))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

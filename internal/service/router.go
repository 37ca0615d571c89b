package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gathersplit/internal/auth"
	"gathersplit/internal/middleware"
	"gathersplit/internal/storage"
)

// NewRouter wires all services onto a chi router. Registration and login are
// public; everything else under /api/v1 requires a valid bearer token.
func NewRouter(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) http.Handler {
	authService := NewAuthService(authenticator, jwtManager, store)
	userService := NewUserService(store)
	gatheringService := NewGatheringService(store)
	expenseService := NewExpenseService(store)
	settlementService := NewSettlementService(store)

	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authService.Register)
		r.Post("/auth/login", authService.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Get("/auth/me", authService.Me)

			r.Get("/users", userService.ListUsers)
			r.Get("/users/{id}", userService.GetUser)
			r.Put("/users/{id}", userService.UpdateUser)
			r.Delete("/users/{id}", userService.DeleteUser)

			r.Post("/gatherings", gatheringService.CreateGathering)
			r.Get("/gatherings", gatheringService.ListGatherings)
			r.Get("/gatherings/{id}", gatheringService.GetGathering)
			r.Put("/gatherings/{id}", gatheringService.UpdateGathering)
			r.Delete("/gatherings/{id}", gatheringService.DeleteGathering)

			r.Post("/gatherings/{id}/expenses", expenseService.CreateExpense)
			r.Get("/gatherings/{id}/expenses", expenseService.ListExpenses)
			r.Get("/expenses/{id}", expenseService.GetExpense)
			r.Put("/expenses/{id}", expenseService.UpdateExpense)
			r.Delete("/expenses/{id}", expenseService.DeleteExpense)

			r.Get("/gatherings/{id}/balances", settlementService.GetBalances)
			r.Get("/gatherings/{id}/settlement", settlementService.GetSettlement)
		})
	})

	return r
}

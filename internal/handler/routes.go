package handler

import (
	"net/http"

	"github.com/forgo/gigbook/internal/middleware"
)

// Handlers groups every endpoint handler served by the API
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Quote        *QuoteRequestHandler
	Equipment    *EquipmentHandler
	Review       *ReviewHandler
	Portfolio    *PortfolioHandler
}

// RegisterRoutes registers all routes on mux. Routes that act on behalf of a
// caller are wrapped in auth.
func RegisterRoutes(mux *http.ServeMux, h Handlers, auth middleware.Middleware) {
	protected := func(fn http.HandlerFunc) http.Handler {
		return auth(fn)
	}

	mux.HandleFunc("GET /health", h.Health.Health)

	// Auth
	mux.HandleFunc("POST /v1/auth/signup", h.Auth.SignUp)
	mux.HandleFunc("POST /v1/auth/signin", h.Auth.SignIn)
	mux.HandleFunc("POST /v1/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /v1/auth/signout", protected(h.Auth.SignOut))
	mux.Handle("GET /v1/auth/me", protected(h.Auth.Me))

	// Profiles
	mux.HandleFunc("GET /v1/profiles", h.Profile.Search)
	mux.HandleFunc("GET /v1/profiles/{profileId}", h.Profile.Get)
	mux.Handle("PATCH /v1/profiles/{profileId}", protected(h.Profile.Update))

	// Availability
	mux.Handle("POST /v1/availability", protected(h.Availability.Create))
	mux.Handle("GET /v1/availability", protected(h.Availability.List))
	mux.Handle("PATCH /v1/availability/{availabilityId}", protected(h.Availability.Update))
	mux.Handle("DELETE /v1/availability/{availabilityId}", protected(h.Availability.Delete))

	// Bookings
	mux.Handle("POST /v1/bookings", protected(h.Booking.Create))
	mux.Handle("GET /v1/bookings", protected(h.Booking.List))
	mux.Handle("GET /v1/bookings/{bookingId}", protected(h.Booking.Get))
	mux.Handle("PATCH /v1/bookings/{bookingId}/status", protected(h.Booking.UpdateStatus))

	// Quote requests
	mux.Handle("POST /v1/quotes", protected(h.Quote.Create))
	mux.Handle("GET /v1/quotes", protected(h.Quote.List))
	mux.Handle("GET /v1/quotes/{quoteId}", protected(h.Quote.Get))
	mux.Handle("PATCH /v1/quotes/{quoteId}/status", protected(h.Quote.UpdateStatus))

	// Equipment proposals
	mux.Handle("POST /v1/proposals", protected(h.Equipment.CreateProposal))
	mux.Handle("GET /v1/proposals", protected(h.Equipment.ListProposals))
	mux.Handle("GET /v1/proposals/{proposalId}", protected(h.Equipment.GetProposal))
	mux.Handle("PATCH /v1/proposals/{proposalId}/status", protected(h.Equipment.UpdateProposalStatus))

	// Equipment listings
	mux.Handle("POST /v1/equipment", protected(h.Equipment.Create))
	mux.HandleFunc("GET /v1/equipment", h.Equipment.Search)
	mux.HandleFunc("GET /v1/equipment/{equipmentId}", h.Equipment.Get)
	mux.Handle("PATCH /v1/equipment/{equipmentId}", protected(h.Equipment.Update))
	mux.Handle("DELETE /v1/equipment/{equipmentId}", protected(h.Equipment.Delete))

	// Reviews
	mux.Handle("POST /v1/reviews", protected(h.Review.Create))
	mux.HandleFunc("GET /v1/professionals/{professionalId}/reviews", h.Review.ListByProfessional)

	// Portfolio
	mux.Handle("POST /v1/portfolio", protected(h.Portfolio.Create))
	mux.HandleFunc("GET /v1/professionals/{professionalId}/portfolio", h.Portfolio.ListByProfessional)
	mux.Handle("PATCH /v1/portfolio/{itemId}", protected(h.Portfolio.Update))
	mux.Handle("DELETE /v1/portfolio/{itemId}", protected(h.Portfolio.Delete))
}

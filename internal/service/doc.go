// Package service implements the marketplace use cases.
//
// Each service takes a config struct holding the repository contracts it
// needs, declared here as small interfaces so tests can pass in-memory fakes.
// Every write first checks internal/policy against the acting identity.
//
// # Error Handling
//
// Errors wrap one of the model kinds so handlers map them with errors.Is:
//
//	var (
//	    ErrBookingNotFound = kindError(model.ErrNotFound, "booking not found")
//	    ErrReviewExists    = kindError(model.ErrConflict, "booking already has a review")
//	)
//
// # Registration
//
// AuthService.SignUp runs a saga: create the identity, then the profile. When
// the profile step fails the identity is deleted; if that also fails a
// reconcile event is published for the orphan sweeper.
//
// # Example Usage
//
//	bookings := NewBookingService(BookingServiceConfig{
//	    Repo:              bookingRepo,
//	    Profiles:          profileRepo,
//	    StrictTransitions: cfg.Status.StrictTransitions,
//	})
//	b, err := bookings.UpdateStatus(ctx, actorID, bookingID, model.BookingConfirmed)
package service

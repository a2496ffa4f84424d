// Package model defines the marketplace entities and the error kinds shared
// by every layer.
//
// # Entities
//
// Every entity embeds Entity[P], which carries the id and timestamps around a
// props value. Props validate themselves and render a flat record:
//
//   - Profile: one identity's public presence, client or professional
//   - Availability: a professional's available or blocked slot
//   - Booking, QuoteRequest: requests from a client to a professional
//   - Equipment, EquipmentProposal: gear listings and offers on them
//   - Review: a client's rating of a booking
//   - PortfolioItem: a professional's showcase entry
//
// Constructors (NewBooking, NewReview, ...) fill defaults and validate;
// patches go through Entity.Mutate, which leaves the entity unchanged on
// failure.
//
// # Status Machines
//
// BookingMachine, QuoteRequestMachine and ProposalMachine accept any known
// status by default. Strict mode also requires the pair to be an edge of the
// transition table.
//
// # Errors
//
// ErrValidation, ErrNotFound, ErrForbidden, ErrConflict and ErrInternal are
// the kinds. Field-level failures come back as *InvalidPropsError and render
// as RFC 9457 Problem Details:
//
//	{"type": ".../validation", "status": 422, "errors": [{"field": "date", "message": "is required"}]}
package model

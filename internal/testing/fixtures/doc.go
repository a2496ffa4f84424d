// Package fixtures builds valid marketplace entities for tests.
//
// Builders return in-memory entities with sensible defaults, customized by
// option functions over the entity's props:
//
//	pro := fixtures.Professional(t)
//	client := fixtures.Profile(t)
//	b := fixtures.Booking(t, pro, client, fixtures.WithBookingStatus(model.BookingCompleted))
//
// A Factory persists the same entities through the repositories, for
// integration tests against testdb:
//
//	f := fixtures.New(tdb.DB)
//	pro := f.CreateProfessional(t)
//	f.CreateReview(t, f.CreateBooking(t, pro, f.CreateProfile(t)), 5)
package fixtures

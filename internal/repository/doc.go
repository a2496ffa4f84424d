// Package repository implements the repository contracts on SurrealDB.
//
// Each repository takes a database.Database and maps one table:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Entities are stored by their own id with type::thing($tb, $id)
//   - GetByID returns (nil, nil) for a missing record
//   - Listings return a model.Page with the filtered total
//
// ReviewRepository.Create writes the review and recomputes the professional's
// rating inside one database.AtomicBatch, so neither is visible without the
// other. Unique indexes surface as model.ErrConflict (or identity.ErrEmailTaken
// for accounts).
//
// # Example Usage
//
//	repo := NewBookingRepository(db)
//	page, err := repo.List(ctx, model.PartyFilter{
//	    PartyID: clientID,
//	    Role:    model.RoleClient,
//	}, model.Pagination{Limit: 20})
package repository

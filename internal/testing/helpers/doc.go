// Package helpers provides HTTP and database test utilities.
//
// # JWT Helpers
//
// Mint access tokens with an in-memory key:
//
//	jh := helpers.NewJWTHelper(t)
//	token := jh.GenerateToken(t, identityID, model.UserTypeClient)
//
// # Request Helpers
//
//	rec := helpers.NewRequest(t, http.MethodPost, "/v1/bookings").
//	    WithToken(token).
//	    WithBody(body).
//	    Do(mux)
//	helpers.AssertProblemDetails(t, rec, http.StatusForbidden, model.ErrCodeForbidden)
//
// # Database Assertions
//
//	helpers.AssertRecordExists(t, tdb.DB, "review", id)
//	helpers.AssertRecordNotExists(t, tdb.DB, "profile", id)
package helpers

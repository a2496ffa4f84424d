// Package testdb runs integration tests against a real SurrealDB server.
//
// Each call to New creates a uniquely named namespace, applies the schema
// from database.Migrate and removes the namespace when the test ends:
//
//	func TestReviewRating(t *testing.T) {
//	    tdb := testdb.New(t)
//	    reviews := repository.NewReviewRepository(tdb.DB)
//	    ...
//	}
//
// # Environment
//
//	TEST_DB_HOST      server host; tests are skipped when unset
//	TEST_DB_PORT      default 8000
//	TEST_DB_USER      default root
//	TEST_DB_PASSWORD  default root
package testdb

// Package test provides infrastructure and utilities for integration testing.
//
// A Suite runs the real API server over a temporary SQLite database and
// talks to it through the real API client, so tests exercise the whole path
// from list controller or form down to the database.
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    client, err := suite.APIClient.Clients().Create(suite.Context(), handlers.ClientCreateParams{
//	        Name:       "Acme",
//	        ClientCode: "ACME",
//	    })
//	    suite.Require().NoError(err)
//	}
//
// Pass WithJWTSecret to run the server with authorization enabled; Token and
// ClientFor then give clients holding a given role.
package test

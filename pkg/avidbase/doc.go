// Package avidbase defines the public types for the Avidbase account API client.
//
// The Client interface is implemented by the value returned from
// github.com/avidbase/avidbase-go/pkg/avidclient.New.
//
// # Authentication
//
// Two credentials are involved:
//
//   - The machine access token identifies the calling service. It is obtained
//     by exchanging the account's API key and is attached to the user
//     administration calls (ListUsers, CreateUser, UpdateUser). It is fetched
//     lazily on the first call that needs it and then reused for the lifetime
//     of the client.
//   - The user access token identifies an end user. It is obtained through
//     Login and exposed through GetUserAccessToken; the client never sends it.
//
// Both tokens travel in the Access-Token header, not Authorization.
//
// # Failures
//
// Operations never return errors. A failed call yields false, a nil result or
// ("", false). The reason is reported through Config.Logger, if one is set.
//
// # Example
//
//	client, err := avidclient.NewWithAPIKey("account-uuid", "api-key")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok := client.CreateUser(ctx, avidbase.User{
//		FirstName: "Ada",
//		LastName:  "Lovelace",
//		Email:     "ada@example.com",
//		Password:  "secret",
//	})
//
//	users := client.ListUsers(ctx)
package avidbase

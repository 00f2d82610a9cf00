// Package avidclient provides the entry points for creating Avidbase API
// clients.
//
// Basic usage:
//
//	client, err := avidclient.NewWithAPIKey("account-uuid", "api-key")
//
// Against another environment, or a local fake server in tests:
//
//	client, err := avidclient.NewWithBaseURL("account-uuid", "api-key", "http://127.0.0.1:8080")
//
// Full control:
//
//	client, err := avidclient.New(&avidbase.Config{
//		Account:     "account-uuid",
//		APIKey:      "api-key",
//		BaseURL:     "https://api.avidbase.com/",
//		HTTPTimeout: 10 * time.Second,
//		Logger:      logger,
//		Debug:       true,
//	})
package avidclient

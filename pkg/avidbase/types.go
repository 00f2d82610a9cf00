package avidbase

// User is the record sent when creating or updating a user. Values are passed
// to the API as-is; the server is responsible for validation.
type User struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name"  yaml:"last_name"`
	Email     string `json:"email"      yaml:"email"`
	Password  string `json:"password"   yaml:"password"`
}

// AuthResult is a decoded JSON object returned by the API. The client does not
// impose a schema on it.
type AuthResult map[string]interface{}

// String returns the value of key when it is a string.
func (r AuthResult) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}

	return ""
}

// Defaults.
const (
	// DefaultBaseURL is the API root used when Config.BaseURL is empty.
	DefaultBaseURL = "https://dev-api.avidbase.com/"
)

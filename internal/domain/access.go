package domain

import "time"

// AccessPacket is the OAuth2 token bundle issued by Discord for a user.
// It is embedded in User, recomputed on every login and never independently
// persisted or exposed through the public API.
type AccessPacket struct {
	AccessToken  string    `json:"access_token" db:"access_token"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	Scope        string    `json:"scope" db:"scope"`
	TokenType    string    `json:"token_type" db:"token_type"`
}

// AuthorizationValue returns the Authorization header value for API calls
// made on behalf of the user, e.g. "Bearer abc123".
func (p AccessPacket) AuthorizationValue() string {
	return p.TokenType + " " + p.AccessToken
}

// IsExpired reports whether the access token has passed its expiry.
func (p AccessPacket) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

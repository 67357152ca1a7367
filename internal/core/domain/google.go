package domain

// GoogleUserInfo is the profile returned by Google's userinfo endpoint
// during the redirect flow.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

package dto

// GoogleLoginResponse carries the Google authorization URL for the client
// to redirect to
type GoogleLoginResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

package domain

// TokenPair is what a successful login returns: a short-lived access token
// and a long-lived refresh token, both stateless JWTs.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "bearer"
}

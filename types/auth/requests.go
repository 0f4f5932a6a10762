package auth

// LoginRequest authenticates the back-office operator.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

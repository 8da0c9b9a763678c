package authrpc

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse answers both Register and Login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// VerifyRequest and ProfileRequest are empty: the token travels in the
// "authorization" metadata key.
type VerifyRequest struct{}

type Claims struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyResponse struct {
	Valid  bool    `json:"valid"`
	Claims *Claims `json:"claims"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	User *User `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

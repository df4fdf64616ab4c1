package models

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Age      *int64 `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// LoginRequest represents credentials provided by the client.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserDTO is a minimal user representation for responses.
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

// StatusResponse reports whether the caller holds a live session.
type StatusResponse struct {
	Authenticated bool     `json:"authenticated"`
	User          *UserDTO `json:"user,omitempty"`
}

// ProfileResponse is the user profile without the password hash.
type ProfileResponse struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Age      *int64  `json:"age"`
	Gender   *string `json:"gender"`
}

// MessageResponse is a simple confirmation shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a simple error shape for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

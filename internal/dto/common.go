package dto

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// PublicUserResponse carries the display fields of another user.
type PublicUserResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ProfilePhotos []string `json:"profilePhotos"`
}

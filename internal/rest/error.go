package rest

// ErrorResponse is the JSON envelope returned for client errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

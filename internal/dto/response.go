package dto

// SuccessResponse is the envelope for every successful API response.
type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

// ErrorResponse is the envelope for every failed API response. Error carries
// the underlying detail for 500-class failures and is omitted otherwise.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewSuccess wraps data in the success envelope.
func NewSuccess(data any) SuccessResponse {
	return SuccessResponse{OK: true, Data: data}
}

// NewError builds a client-facing error envelope.
func NewError(message string) ErrorResponse {
	return ErrorResponse{OK: false, Message: message}
}

// NewUpstreamError builds a 500-class envelope with a generic message plus
// the underlying error detail.
func NewUpstreamError(message string, err error) ErrorResponse {
	return ErrorResponse{OK: false, Message: message, Error: err.Error()}
}

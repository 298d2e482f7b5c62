package errors

const (
	HttpInternalError           = "internal_error"
	HttpInvalidRequestError     = "invalid_request"
	HttpInvalidRangeError       = "invalid_range"
	HttpInvalidAggregationError = "invalid_aggregation"
)

// ErrorResponse is the error response body of the HTTP API.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

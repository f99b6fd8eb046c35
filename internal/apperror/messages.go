package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// OKX client errors
	CodeRateLimit:                "Local rate-limit governor refused the call",
	CodeNotConnected:             "WebSocket session is not connected",
	CodeWebSocketConnectionError: "WebSocket connection error",
	CodeRemoteError:              "OKX returned a non-zero response code",
	CodeOutOfMaxOrderSize:        "Batch order request exceeds the 20-order limit",
	CodeMustHaveSameInstID:       "Batch order entries must share the request's instrument ID",
	CodeDecode:                   "Failed to decode a JSON or numeric value",
	CodeTransport:                "HTTP transport error",
	CodeSignatureError:           "Failed to build the request signature",
	CodeOrderBookGap:             "Order book sequence gap detected",
	CodeAuthenticationFailed:     "WebSocket login was rejected",
}

package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// OKX client error codes
const (
	// CodeRateLimit is returned by the governor when a call is refused locally,
	// before any request reaches the wire.
	CodeRateLimit Code = "OKX_RATE_LIMIT"

	// CodeNotConnected is returned by a WebSocket session send when the
	// underlying connection is down.
	CodeNotConnected Code = "OKX_WEBSOCKET_NOT_CONNECTED"

	// CodeWebSocketConnectionError covers dial/reconnect failures.
	CodeWebSocketConnectionError Code = "OKX_WEBSOCKET_CONNECTION_ERROR"

	// CodeRemoteError wraps a non-zero `code` field from an OKX REST or
	// WebSocket envelope.
	CodeRemoteError Code = "OKX_REMOTE_ERROR"

	// CodeOutOfMaxOrderSize is returned when a batch order request exceeds
	// the 20-order vendor limit.
	CodeOutOfMaxOrderSize Code = "OKX_OUT_OF_MAX_ORDER_SIZE"

	// CodeMustHaveSameInstID is returned when a batch order request mixes
	// instrument IDs.
	CodeMustHaveSameInstID Code = "OKX_MUST_HAVE_SAME_INST_ID"

	// CodeEmptyResult covers an endpoint whose contract promises exactly one
	// data element on success arriving with an empty data array instead.
	CodeEmptyResult Code = "OKX_EMPTY_RESULT"

	// CodeDecode covers JSON or numeric-string parsing failures.
	CodeDecode Code = "OKX_DECODE_ERROR"

	// CodeTransport covers HTTP/TLS/socket failures below the application
	// protocol.
	CodeTransport Code = "OKX_TRANSPORT_ERROR"

	// CodeSignatureError covers HMAC signing/header construction failures.
	CodeSignatureError Code = "OKX_SIGNATURE_ERROR"

	// CodeOrderBookGap marks an order-book sequence gap that forced a
	// resubscribe.
	CodeOrderBookGap Code = "OKX_ORDER_BOOK_GAP"

	// CodeAuthenticationFailed covers a private-session login rejection.
	CodeAuthenticationFailed Code = "OKX_AUTHENTICATION_FAILED"
)

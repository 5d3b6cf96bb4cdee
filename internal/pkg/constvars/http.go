package constvars

const (
	MIMEApplicationJSON = "application/json"

	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-Id"
	HeaderAPIKey      = "X-Api-Key"
)

const (
	StatusOK      = 200
	StatusCreated = 201

	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusUnprocessableEntity = 422
	StatusLocked              = 423
	StatusTooManyRequests     = 429

	StatusInternalServerError = 500
	StatusGatewayTimeout      = 504
)

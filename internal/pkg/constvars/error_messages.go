package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must contain at least %s items",
	"max":      "maximum at %s characters long",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"uuid":     "must be a valid UUID",
	"datetime": "must match the format %s",
	"weekday":  "must be a weekday name (monday..sunday)",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "cannot process your request, please check your input"
	ErrClientServerLongRespond             = "server took too long to respond, please try again later"
	ErrClientInvalidAPIKey                 = "invalid or missing API key"

	ErrClientDoctorNotFound        = "doctor not found"
	ErrClientScheduleNotFound      = "schedule not found"
	ErrClientSlotNotFound          = "time slot not found"
	ErrClientScheduleInvalidRange  = "start time must be earlier than end time"
	ErrClientScheduleEmptyWeekdays = "at least one weekday must be selected"
	ErrClientScheduleLocked        = "schedule has booked slots and cannot be modified"
	ErrClientScheduleConflict      = "a schedule already exists for this doctor at the same date and time"
	ErrClientScheduleBatchConflict = "schedules already exist on: %s"
	ErrClientSlotAlreadyBooked     = "time slot is already booked"
)

// Error messages for developers
const (
	ErrDevValidationFailed               = "request payload validation failed"
	ErrDevInvalidRequestPayload          = "invalid request payload"
	ErrDevInvalidInput                   = "invalid input"
	ErrDevCannotParseJSON                = "failed to parse JSON payload"
	ErrDevCannotParseDate                = "failed to parse calendar date"
	ErrDevCannotParseTime                = "failed to parse wall clock time"
	ErrDevCannotMarshalJSON              = "failed to marshal value into JSON"
	ErrDevServerDeadlineExceeded         = "request deadline exceeded"
	ErrDevURLParamIDValidationFailed     = "url parameter '%s' validation failed"
	ErrDevInvalidAPIKey                  = "request API key does not match the configured admin key"
	ErrDevDoctorNotFound                 = "doctor does not exist in the directory"
	ErrDevScheduleNotFound               = "schedule does not exist"
	ErrDevSlotNotFound                   = "time slot does not exist"
	ErrDevScheduleInvalidRange           = "slot generation produced an empty sequence, start >= end"
	ErrDevScheduleEmptyWeekdays          = "weekday projection produced an empty sequence"
	ErrDevScheduleLocked                 = "schedule mutation blocked, at least one slot is booked"
	ErrDevScheduleConflict               = "unique shift constraint violated for (doctor, date, start)"
	ErrDevScheduleBatchConflict          = "batch rejected, conflicting schedules on: %s"
	ErrDevSlotAlreadyBooked              = "slot already carries an appointment reference"

	ErrDevDBFailedToFindData       = "failed to find data in postgres"
	ErrDevDBFailedToInsertData     = "failed to insert data into postgres"
	ErrDevDBFailedToUpdateData     = "failed to update data in postgres"
	ErrDevDBFailedToDeleteData     = "failed to delete data from postgres"
	ErrDevDBFailedToIterateDataset = "failed to iterate postgres dataset"
	ErrDevDBFailedTransaction      = "failed to run postgres transaction"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into mongodb"
	ErrDevDBFailedToFindDocument     = "failed to find document in mongodb"
	ErrDevDBFailedToIterateDocuments = "failed to iterate mongodb documents"

	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data in redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue '%s'"
)

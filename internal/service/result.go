package service

// Rejection codes carried in the operation envelope. Business rejections are
// values, not errors; only infrastructure failures travel the error path.
const (
	CodeOK                   = "OK"
	CodeNotFound             = "NOT_FOUND"
	CodeNoChange             = "NO_CHANGE"
	CodeAlreadyCancelled     = "ALREADY_CANCELLED"
	CodeTransitionNotAllowed = "TRANSITION_NOT_ALLOWED"
	CodeNoResults            = "NO_RESULTS"
	CodeNoOffice             = "NO_OFFICE"
	CodeOfficeNotFound       = "OFFICE_NOT_FOUND"
	CodeNoData               = "NO_DATA"
	CodeUnsupportedFormat    = "UNSUPPORTED_FORMAT"
	CodePersistenceRejected  = "PERSISTENCE_REJECTED"
)

// Outcome is the uniform envelope every exposed operation returns; the
// transport layer maps it onto protocol responses.
type Outcome struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func accept(message string, data any) Outcome {
	return Outcome{Success: true, Code: CodeOK, Message: message, Data: data}
}

func reject(code, message string) Outcome {
	return Outcome{Success: false, Code: code, Message: message}
}

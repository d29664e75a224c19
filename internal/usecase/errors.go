package usecase

import "errors"

// Error codes returned to clients as the stable "type" discriminator.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeIncompleteForm        = "INCOMPLETE_FORM"
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeNotFound              = "NOT_FOUND"
	CodeDuplicateEntry        = "DUPLICATE_ENTRY"
	CodeEnrichmentUnavailable = "ENRICHMENT_UNAVAILABLE"
	CodeStorageUnavailable    = "STORAGE_UNAVAILABLE"
	CodeStorageError          = "STORAGE_ERROR"
	CodeDatabaseError         = "DATABASE_ERROR"
)

// AppError is the taxonomy error carried across component boundaries.
// Expected conditions (not found, duplicate, incomplete) travel as
// values of this type instead of panics or ad-hoc strings.
type AppError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NewAppErrorWithDetails(code, message string, details map[string]any) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

package apperror

import "net/http"

// Error kinds for the workflow failure taxonomy. Every failure path in the
// core maps to exactly one kind so clients and the event log can classify it.
const (
	KindSessionTimeout        = "session_timeout"
	KindProfileLookup         = "profile_lookup"
	KindResumeUpload          = "resume_upload"
	KindSubmission            = "submission"
	KindPlanRequest           = "plan_request"
	KindPlanGenerationTimeout = "plan_generation_timeout"
	KindTaskUpdate            = "task_update"
	KindChatRequest           = "chat_request"
	KindValidation            = "validation"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewKind(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return NewKind(http.StatusBadRequest, KindValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// ===========================================================================
// Workflow taxonomy constructors
// ===========================================================================

func SessionTimeout() *AppError {
	return NewKind(http.StatusGatewayTimeout, KindSessionTimeout,
		"Session resolution timed out. Please retry.", nil)
}

func ProfileLookup(err error) *AppError {
	return NewKind(http.StatusBadGateway, KindProfileLookup,
		"Failed to determine your workflow status: "+err.Error(), err)
}

func ResumeUpload(err error) *AppError {
	return NewKind(http.StatusBadGateway, KindResumeUpload,
		"Resume upload failed: "+err.Error(), err)
}

func Submission(err error) *AppError {
	return NewKind(http.StatusBadGateway, KindSubmission,
		"Failed to save your answers: "+err.Error(), err)
}

func PlanRequest(message string, err error) *AppError {
	return NewKind(http.StatusBadGateway, KindPlanRequest, message, err)
}

// PlanRequestRejected covers requests refused before the job is ever issued:
// missing prerequisites rather than a failed call.
func PlanRequestRejected(message string) *AppError {
	return NewKind(http.StatusConflict, KindPlanRequest, message, nil)
}

func PlanGenerationTimeout() *AppError {
	return NewKind(http.StatusGatewayTimeout, KindPlanGenerationTimeout,
		"Plan generation did not complete in time. Please request again.", nil)
}

func TaskUpdate(err error) *AppError {
	return NewKind(http.StatusBadGateway, KindTaskUpdate,
		"Failed to update task status: "+err.Error(), err)
}

func ChatRequest(err error) *AppError {
	return NewKind(http.StatusBadGateway, KindChatRequest,
		"Assistant request failed: "+err.Error(), err)
}

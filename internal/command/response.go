package command

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Status values carried in every response.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// TimestampFormat is the layout of timestamp_utc.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Code is a stable numeric failure code. The leading three digits are the
// HTTP status the failure is served with.
type Code int

const (
	CodeBadRequest     Code = 4001
	CodeNotFound       Code = 4041
	CodeInvalidCommand Code = 4220
	CodeProcessing     Code = 4221
	CodeInternal       Code = 5000
)

// HTTPStatus returns the HTTP status a failure with this code is served with.
func (c Code) HTTPStatus() int {
	if c < 1000 || c > 5999 {
		return http.StatusInternalServerError
	}
	return int(c) / 10
}

// Timestamp formats t as timestamp_utc.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Detection is a single identified vessel.
type Detection struct {
	// Identity is the vessel label, e.g. "USV_1".
	Identity string `json:"identity"`

	// Box is [x1, y1, x2, y2] in pixels with x2 > x1 and y2 > y1.
	Box [4]int `json:"box_xyxy"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`
}

// ThermalCountResult is the result of a THERMAL_USV_COUNT command.
type ThermalCountResult struct {
	DetectedCount int `json:"detected_count"`
}

// VisibleIdentifyResult is the result of a VISIBLE_USV_IDENTIFY command.
type VisibleIdentifyResult struct {
	Detections []Detection `json:"detections"`
}

// SuccessResponse is returned when a task completes.
type SuccessResponse struct {
	RequestCommandID string `json:"request_command_id"`
	Status           string `json:"status"`
	TimestampUTC     string `json:"timestamp_utc"`
	Result           any    `json:"result"`
}

// ErrorPayload describes a failure.
type ErrorPayload struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// FailureResponse is returned when a command cannot be completed.
type FailureResponse struct {
	RequestCommandID string       `json:"request_command_id"`
	Status           string       `json:"status"`
	TimestampUTC     string       `json:"timestamp_utc"`
	Error            ErrorPayload `json:"error"`
}

// Outcome is the reply to one command. Exactly one of Success and Failure
// is set; use Succeed and Fail to build it.
type Outcome struct {
	Success *SuccessResponse
	Failure *FailureResponse
}

// Succeed builds a successful outcome for commandID.
func Succeed(commandID string, at time.Time, result any) Outcome {
	return Outcome{Success: &SuccessResponse{
		RequestCommandID: commandID,
		Status:           StatusSuccess,
		TimestampUTC:     Timestamp(at),
		Result:           result,
	}}
}

// Fail builds a failed outcome for commandID.
func Fail(commandID string, at time.Time, code Code, message string) Outcome {
	return Outcome{Failure: &FailureResponse{
		RequestCommandID: commandID,
		Status:           StatusFailure,
		TimestampUTC:     Timestamp(at),
		Error:            ErrorPayload{Code: code, Message: message},
	}}
}

// HTTPStatus is the status code the outcome is served with.
func (o Outcome) HTTPStatus() int {
	if o.Failure != nil {
		return o.Failure.Error.Code.HTTPStatus()
	}
	return http.StatusOK
}

// Body returns the response value to serialise.
func (o Outcome) Body() any {
	if o.Failure != nil {
		return o.Failure
	}
	return o.Success
}

// Envelope is the decode-side view of either response shape. Result is kept
// raw until the caller knows which task produced it.
type Envelope struct {
	RequestCommandID string          `json:"request_command_id"`
	Status           string          `json:"status"`
	TimestampUTC     string          `json:"timestamp_utc"`
	Result           json.RawMessage `json:"result,omitempty"`
	Error            *ErrorPayload   `json:"error,omitempty"`
}

// Succeeded reports whether the envelope carries a SUCCESS status.
func (e *Envelope) Succeeded() bool {
	return e.Status == StatusSuccess
}

// DecodeResult unmarshals the raw result into v.
func (e *Envelope) DecodeResult(v any) error {
	if !e.Succeeded() {
		return fmt.Errorf("command %s has status %s, no result", e.RequestCommandID, e.Status)
	}
	if len(e.Result) == 0 {
		return fmt.Errorf("command %s: empty result", e.RequestCommandID)
	}
	return json.Unmarshal(e.Result, v)
}

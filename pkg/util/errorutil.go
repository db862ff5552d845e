package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Error codes shared by the API client and the dev backend.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeNetwork      = "NETWORK_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// Kind groups error codes into the categories views react to.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindNetwork        Kind = "network"
	KindServer         Kind = "server"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.HTTPStatus)
	}
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports input rejected before or by the server. Details
// maps field names to messages.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewNetworkError wraps a transport failure (no response was received).
func NewNetworkError(err error) error {
	return &DomainError{
		Code:       CodeNetwork,
		Message:    "network request failed",
		HTTPStatus: 0,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// KindOf classifies err. Errors that are not DomainErrors are server kind.
func KindOf(err error) Kind {
	var de *DomainError
	if !errors.As(err, &de) {
		return KindServer
	}
	switch de.Code {
	case CodeValidation:
		return KindValidation
	case CodeUnauthorized:
		return KindAuthentication
	case CodeForbidden:
		return KindAuthorization
	case CodeNotFound:
		return KindNotFound
	case CodeConflict:
		return KindConflict
	case CodeNetwork:
		return KindNetwork
	default:
		return KindServer
	}
}

// IsKind reports whether err belongs to kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldErrors returns per-field validation messages carried by err.
func FieldErrors(err error) map[string]string {
	var de *DomainError
	if !errors.As(err, &de) || len(de.Details) == 0 {
		return nil
	}
	fields := make(map[string]string, len(de.Details))
	for k, v := range de.Details {
		if msg, ok := v.(string); ok {
			fields[k] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UserMessage returns the text shown in a banner for err: the message the
// server sent when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var de *DomainError
	if !errors.As(err, &de) || de.Code == CodeNetwork || de.Message == "" {
		return fallback
	}
	return de.Message
}

// FieldError is one entry of the errors array in an error payload.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ErrorBody is the JSON payload of every non-2xx API response.
type ErrorBody struct {
	Success bool         `json:"success"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ToResponse renders a DomainError as an error payload.
func ToResponse(de *DomainError) ErrorBody {
	body := ErrorBody{Success: false, Code: de.Code, Message: de.Message}
	fields := FieldErrors(de)
	if len(fields) == 0 {
		return body
	}
	params := make([]string, 0, len(fields))
	for p := range fields {
		params = append(params, p)
	}
	sort.Strings(params)
	for _, p := range params {
		body.Errors = append(body.Errors, FieldError{Param: p, Msg: fields[p]})
	}
	return body
}

// FromResponse rebuilds a DomainError from a non-2xx status and its body.
// Bodies without a message leave Message empty so callers show their own
// fallback.
func FromResponse(status int, raw []byte) *DomainError {
	var body ErrorBody
	_ = json.Unmarshal(raw, &body)

	de := &DomainError{
		Code:       body.Code,
		Message:    body.Message,
		HTTPStatus: status,
	}
	if de.Code == "" {
		de.Code = codeForStatus(status)
	}
	if len(body.Errors) > 0 {
		de.Details = make(map[string]any, len(body.Errors))
		for _, fe := range body.Errors {
			de.Details[fe.Param] = fe.Msg
		}
	}
	return de
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeInternal
	}
}

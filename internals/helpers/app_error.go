package helper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// ErrorKind classifies failures so callers can react to them.
type ErrorKind string

const (
	KindBadRequest       ErrorKind = "BAD_REQUEST"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindValidation       ErrorKind = "VALIDATION_ERROR"
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
	KindInternal         ErrorKind = "INTERNAL_ERROR"
)

// Status maps a kind to its HTTP status.
func (k ErrorKind) Status() int {
	switch k {
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// KindFromStatus is the inverse of Status, used on the client side.
func KindFromStatus(status int) ErrorKind {
	switch status {
	case fiber.StatusBadRequest:
		return KindBadRequest
	case fiber.StatusNotFound:
		return KindNotFound
	case fiber.StatusUnprocessableEntity:
		return KindValidation
	case fiber.StatusServiceUnavailable:
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

// FieldErrors maps a dotted field path (e.g. "questions.0.options.1") to messages.
type FieldErrors map[string][]string

// Add appends msg under path, skipping exact duplicates.
func (fe FieldErrors) Add(path, msg string) {
	for _, m := range fe[path] {
		if m == msg {
			return
		}
	}
	fe[path] = append(fe[path], msg)
}

// Has reports whether path carries at least one message.
func (fe FieldErrors) Has(path string) bool { return len(fe[path]) > 0 }

// Paths returns the failing paths in sorted order.
func (fe FieldErrors) Paths() []string {
	out := make([]string, 0, len(fe))
	for p := range fe {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Error implements error so a FieldErrors can travel as one.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	p := fe.Paths()[0]
	if len(fe) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", p, fe[p][0])
	}
	return fmt.Sprintf("validation failed: %s: %s (and %d more)", p, fe[p][0], len(fe)-1)
}

// AppError carries a kind, a caller-safe message and the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message, Err: err}
}

func NewValidation(fields FieldErrors) *AppError {
	return &AppError{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NewStoreUnavailable(err error) *AppError {
	return &AppError{Kind: KindStoreUnavailable, Message: "store unavailable", Err: err}
}

func NewInternal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind carried by err, KindInternal when none.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return KindValidation
	}
	return KindInternal
}

// FromError mengubah error apa pun menjadi response JSON konsisten.
// Detail penyebab hanya dicatat di log, tidak pernah dikirim ke caller.
func FromError(c *fiber.Ctx, err error) error {
	var ae *AppError
	if !errors.As(err, &ae) {
		var fe FieldErrors
		if errors.As(err, &fe) {
			return JsonValidationError(c, fe)
		}
		if fiberErr, ok := err.(*fiber.Error); ok {
			return JsonError(c, fiberErr.Code, fiberErr.Message)
		}
		ae = NewInternal(err)
	}

	if ae.Kind == KindValidation {
		return JsonValidationError(c, ae.Fields)
	}
	if ae.Err != nil {
		log.Errorf("[%s] %s %s: %v", ae.Kind, c.Method(), c.OriginalURL(), ae.Err)
	}
	return JsonError(c, ae.Kind.Status(), ae.Message)
}

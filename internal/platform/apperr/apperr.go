package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind clasifica un error de aplicación. Cada Kind tiene un status HTTP fijo.
type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindBadRequest         Kind = "bad_request"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindPayloadTooLarge    Kind = "payload_too_large"
	KindPreconditionFailed Kind = "precondition_failed"
	KindInternal           Kind = "internal"
)

// Status devuelve el código HTTP asociado al Kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		// PreconditionFailed es un error de cableado, no del cliente.
		return http.StatusInternalServerError
	}
}

// Name es el valor del campo "name" en el cuerpo de error.
func (k Kind) Name() string {
	switch k {
	case KindUnauthenticated:
		return "UnauthenticatedError"
	case KindBadRequest:
		return "BadRequestError"
	case KindForbidden:
		return "ForbiddenError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	case KindPayloadTooLarge:
		return "PayloadTooLargeError"
	case KindPreconditionFailed:
		return "PreconditionFailedError"
	default:
		return "InternalError"
	}
}

// Error es el error estructurado que viaja desde services hasta handlers.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // solo validación
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, así errors.Is(err, apperr.ErrNotFound) funciona con cualquier mensaje.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Invalid arma un BadRequest con detalle por campo.
func Invalid(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg, Fields: fields}
}

var (
	ErrUnauthenticated    = New(KindUnauthenticated, "unauthenticated")
	ErrBadRequest         = New(KindBadRequest, "bad request")
	ErrForbidden          = New(KindForbidden, "forbidden")
	ErrNotFound           = New(KindNotFound, "not found")
	ErrConflict           = New(KindConflict, "conflict")
	ErrPreconditionFailed = New(KindPreconditionFailed, "precondition failed")
	ErrInternal           = New(KindInternal, "internal error")
)

// KindOf devuelve el Kind de err, o KindInternal si no es un *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// As extrae el *Error de la cadena, si existe.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

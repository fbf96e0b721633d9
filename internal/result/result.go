// Package result carries operation outcomes from services to HTTP handlers.
//
// A Result is either successful (with a value) or failed with a Kind that maps
// to exactly one HTTP status. Handlers render it through Envelope, the single
// wire shape every endpoint returns:
//
//	{"statusCode": 404, "message": "Subject not found", "error": true}
package result

import "net/http"

type Kind int

const (
	KindOK Kind = iota
	KindUnauthorized
	KindNotFound
	KindBadRequest
	KindMethodNotAllowed
	KindUpstream
	KindInternal
)

// Fixed messages returned to clients.
const (
	MsgInternal         = "Internal Server Error"
	MsgUnauthorized     = "Unauthorized"
	MsgMethodNotAllowed = "Method Not Allowed"
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindUpstream:
		return "upstream_failure"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindOK:
		return http.StatusOK
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type Result[T any] struct {
	Value   T
	Kind    Kind
	Message string
	// Status overrides the default success status (e.g. 201 on create).
	Status int
}

func OK[T any](value T, message string) Result[T] {
	return Result[T]{Value: value, Kind: KindOK, Message: message}
}

func Created[T any](value T, message string) Result[T] {
	return Result[T]{Value: value, Kind: KindOK, Message: message, Status: http.StatusCreated}
}

func Fail[T any](kind Kind, message string) Result[T] {
	return Result[T]{Kind: kind, Message: message}
}

func Unauthorized[T any]() Result[T] {
	return Fail[T](KindUnauthorized, MsgUnauthorized)
}

func NotFound[T any](message string) Result[T] {
	return Fail[T](KindNotFound, message)
}

func BadRequest[T any](message string) Result[T] {
	return Fail[T](KindBadRequest, message)
}

func Upstream[T any](message string) Result[T] {
	return Fail[T](KindUpstream, message)
}

func Internal[T any]() Result[T] {
	return Fail[T](KindInternal, MsgInternal)
}

// Propagate converts a failed result into another value type.
func Propagate[T, U any](r Result[U]) Result[T] {
	return Result[T]{Kind: r.Kind, Message: r.Message, Status: r.Status}
}

func (r Result[T]) Ok() bool {
	return r.Kind == KindOK
}

func (r Result[T]) StatusCode() int {
	if r.Ok() && r.Status != 0 {
		return r.Status
	}
	return r.Kind.StatusCode()
}

// Envelope is the uniform response body.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      bool   `json:"error,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// Envelope renders the result. Failures never carry data.
func (r Result[T]) Envelope() Envelope {
	if !r.Ok() {
		return Envelope{StatusCode: r.StatusCode(), Message: r.Message, Error: true}
	}
	return Envelope{StatusCode: r.StatusCode(), Message: r.Message, Data: r.Value}
}

// Map transforms the value of a successful result.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.Ok() {
		return Propagate[U](r)
	}
	return Result[U]{Value: fn(r.Value), Kind: KindOK, Message: r.Message, Status: r.Status}
}

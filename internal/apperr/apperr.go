// Package apperr defines the error taxonomy shared by all services.
// Every mutating operation validates before touching the store and returns
// one of these kinds; store-level failures are re-raised as the nearest kind
// after full rollback, never leaking raw storage error text.
package apperr

import "errors"

type Kind int

const (
	KindValidacion Kind = iota
	KindAutorizacion
	KindNoEncontrado
	KindConflicto
	KindStockInsuficiente
)

// Error carries a client-safe message plus an optional wrapped cause that is
// only ever logged, never serialized.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Err }

func Validacion(msg string) error        { return &Error{Kind: KindValidacion, Msg: msg} }
func Autorizacion(msg string) error      { return &Error{Kind: KindAutorizacion, Msg: msg} }
func NoEncontrado(msg string) error      { return &Error{Kind: KindNoEncontrado, Msg: msg} }
func Conflicto(msg string) error         { return &Error{Kind: KindConflicto, Msg: msg} }
func StockInsuficiente(msg string) error { return &Error{Kind: KindStockInsuficiente, Msg: msg} }

// Envolver keeps the client-safe message while preserving the cause chain.
func Envolver(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindDe returns the taxonomy kind of err, or (0, false) when err is not an
// apperr.Error.
func KindDe(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func EsKind(err error, kind Kind) bool {
	k, ok := KindDe(err)
	return ok && k == kind
}

func EsValidacion(err error) bool        { return EsKind(err, KindValidacion) }
func EsAutorizacion(err error) bool      { return EsKind(err, KindAutorizacion) }
func EsNoEncontrado(err error) bool      { return EsKind(err, KindNoEncontrado) }
func EsConflicto(err error) bool         { return EsKind(err, KindConflicto) }
func EsStockInsuficiente(err error) bool { return EsKind(err, KindStockInsuficiente) }

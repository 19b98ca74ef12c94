// Package apperr define los tipos de error de la aplicación. Cada error lleva
// una categoría (Kind) que el ErrorHandler del router traduce una sola vez a un
// código HTTP; los handlers nunca deciden códigos por su cuenta.
package apperr

type Kind int

const (
	KindValidation Kind = iota // campo requerido ausente, término de búsqueda corto
	KindNotFound               // búsqueda por clave primaria sin filas
	KindConflict               // borrado bloqueado por filas dependientes
	KindInternal               // fallo de la base u otra causa no prevista
)

type Error struct {
	Kind    Kind
	Message string // mensaje legible para el cliente
	Err     error  // causa subyacente (solo KindInternal)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal envuelve un fallo de la base; el mensaje de la causa se expone al
// llamador tal cual.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

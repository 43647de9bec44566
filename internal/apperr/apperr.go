// internal/apperr/apperr.go

package apperr

import "fmt"

// Kind klasyfikuje błędy aplikacji; każda operacja zwraca dokładnie
// jeden rodzaj błędu na poziomie CLI.
type Kind int

const (
	AliasNotFound Kind = iota
	InvalidConnectionString
	ConnectFailed
	HandshakeFailed
	AuthFailed
	NotAFile
	InvalidRemotePath
	DestinationIsFile
	ChannelReadError
	TransferFailed
)

func (k Kind) String() string {
	switch k {
	case AliasNotFound:
		return "alias not found"
	case InvalidConnectionString:
		return "invalid connection string"
	case ConnectFailed:
		return "connect failed"
	case HandshakeFailed:
		return "handshake failed"
	case AuthFailed:
		return "authentication failed"
	case NotAFile:
		return "not a file"
	case InvalidRemotePath:
		return "invalid remote path"
	case DestinationIsFile:
		return "destination is a file"
	case ChannelReadError:
		return "channel read error"
	case TransferFailed:
		return "transfer failed"
	}
	return "unknown error"
}

// Error niesie rodzaj błędu, komunikat z kontekstem (alias, ścieżka)
// oraz opcjonalnie błąd źródłowy.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New tworzy nowy błąd danego rodzaju.
func New(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Newf tworzy nowy błąd z formatowanym komunikatem.
func Newf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// IsKind sprawdza czy błąd (lub dowolny błąd w łańcuchu) ma dany rodzaj.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if appErr, ok := err.(*Error); ok && appErr.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

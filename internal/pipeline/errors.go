package pipeline

import (
	"errors"

	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindPrecondition
	KindNoOp
	KindBusy
	KindService
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPrecondition:
		return "precondition"
	case KindNoOp:
		return "noop"
	case KindBusy:
		return "busy"
	case KindService:
		return "service"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	msgEmptyInput      = "Please enter some text."
	msgMustDetect      = "must detect language first"
	msgSameLanguage    = "source equals target"
	msgTooShort        = "text too short to summarize"
	msgDetectFailed    = "Error detecting language."
	msgTranslateFailed = "Error translating text."
	msgSummarizeFailed = "Error summarizing text."
)

// MsgBusy is the LastError of a rejected re-entrant action. The rejection is
// not committed, so front ends that re-read state show it themselves.
const MsgBusy = "action already in progress"

// Error is returned by every pipeline operation. Message is what ends up in
// State.LastError.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String() + " error"
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels below, so errors.Is(err, ErrNoOp) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrPrecondition = &Error{Kind: KindPrecondition}
	ErrNoOp         = &Error{Kind: KindNoOp}
	ErrBusy         = &Error{Kind: KindBusy}
	ErrService      = &Error{Kind: KindService}
	ErrTransport    = &Error{Kind: KindTransport}
)

// KindOf returns the kind of a pipeline error, or 0.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// fromProvider maps a backend failure to a pipeline error. The provider's
// own message wins over the fallback.
func fromProvider(err error, fallback string) *Error {
	pe, ok := provider.AsError(err)
	if !ok {
		return newError(KindTransport, fallback, err)
	}

	msg := pe.Message
	if msg == "" {
		msg = fallback
	}
	if pe.Transport() {
		return newError(KindTransport, msg, err)
	}
	return newError(KindService, msg, err)
}

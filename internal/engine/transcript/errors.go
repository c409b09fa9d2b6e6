package transcript

import (
	"errors"
	"fmt"
)

// Kind classifies transcript failures for the calling boundary.
type Kind int

const (
	KindInvalidInput Kind = iota + 1 // malformed or unsupported video URL
	KindAcquisition                  // browser, caption locator, or direct fetch failure
	KindParse                        // caption document did not match the timed-text shape
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindAcquisition:
		return "acquisition"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// ErrNoCaptions means the page never exposed a caption track.
// Use errors.Is to tell it apart from transient acquisition failures.
var ErrNoCaptions = errors.New("no captions found")

// parseFailedMsg is the only message a parse failure ever carries.
const parseFailedMsg = "failed to parse transcript"

// Error is returned by every exported operation in this package.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // cause; nil for parse errors
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 if err is not a *Error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}

func invalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Msg: msg}
}

func acquisitionErr(msg string, err error) error {
	return &Error{Kind: KindAcquisition, Msg: msg, Err: err}
}

func parseErr() error {
	return &Error{Kind: KindParse, Msg: parseFailedMsg}
}

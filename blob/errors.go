package blob

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindLength Kind = iota + 1
	KindDiscriminant
	KindPointer
	KindHeight
	KindDigest
)

var (
	ErrLength       = errors.New("invalid length")
	ErrDiscriminant = errors.New("invalid discriminant")
	ErrPointer      = errors.New("invalid pointer")
	ErrHeight       = errors.New("invalid height")
	ErrDigest       = errors.New("digest mismatch")
)

func (k Kind) sentinel() error {
	switch k {
	case KindLength:
		return ErrLength
	case KindDiscriminant:
		return ErrDiscriminant
	case KindPointer:
		return ErrPointer
	case KindHeight:
		return ErrHeight
	case KindDigest:
		return ErrDigest
	default:
		return nil
	}
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DecodeError reports why a blob failed validation. Path names the
// nested field that failed, outermost first.
type DecodeError struct {
	Kind Kind
	Path []string
	Msg  string
}

func Errorf(kind Kind, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("blob: ")
	b.WriteString(e.Kind.String())
	if len(e.Path) != 0 {
		b.WriteString(" at ")
		b.WriteString(e.Field())
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Field returns the dotted path of the failing field.
func (e *DecodeError) Field() string {
	return strings.Join(e.Path, ".")
}

func (e *DecodeError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// InField prefixes the path of a DecodeError with name. Other errors are
// wrapped with the field name.
func InField(name string, err error) error {
	if err == nil {
		return nil
	}
	var derr *DecodeError
	if errors.As(err, &derr) {
		path := make([]string, 0, len(derr.Path)+1)
		path = append(path, name)
		path = append(path, derr.Path...)
		return &DecodeError{Kind: derr.Kind, Path: path, Msg: derr.Msg}
	}
	return fmt.Errorf("%s: %w", name, err)
}

// KindOf returns the kind of a DecodeError found in err's chain.
func KindOf(err error) (Kind, bool) {
	var derr *DecodeError
	if errors.As(err, &derr) {
		return derr.Kind, true
	}
	return 0, false
}

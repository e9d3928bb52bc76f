package bytestring

import "errors"

var (
	// ErrOutOfRange reports a position that is not strictly less than the
	// size of the buffer it indexes.
	ErrOutOfRange = errors.New("position out of range")
	// ErrLength reports a requested or resulting size above MaxSize.
	ErrLength = errors.New("length exceeds maximum size")
	// ErrStaleView is the panic value of a View used after its ByteString
	// was mutated.
	ErrStaleView = errors.New("bytestring: view used after mutation")
)

// Error records the operation that rejected its arguments.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "bytestring." + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func outOfRange(op string) error { return &Error{Op: op, Err: ErrOutOfRange} }

func tooLong(op string) error { return &Error{Op: op, Err: ErrLength} }

package rangecoding

import "errors"

// Errors returned by the range coder. All three are terminal for the
// current frame: the coder never guesses or substitutes a default symbol.
// Callers apply packet-loss concealment or drop the frame.
var (
	// ErrCorruptStream indicates a decode operation required more bits than
	// the frame contains, or produced an out-of-range symbol. Decoding the
	// same bytes fails deterministically; there is no retry.
	ErrCorruptStream = errors.New("rangecoding: corrupt stream")

	// ErrBufferExhausted indicates a raw-bit or byte cursor overrun: the
	// forward symbol cursor and the backward raw-bit cursor met before the
	// requested bits were available.
	ErrBufferExhausted = errors.New("rangecoding: buffer exhausted")

	// ErrInvalidModel indicates a caller-supplied probability model is not a
	// valid normalized cumulative frequency table, or a symbol was outside
	// the model's alphabet. This is caller misuse, fatal and non-recoverable.
	ErrInvalidModel = errors.New("rangecoding: invalid probability model")
)

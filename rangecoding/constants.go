// Package rangecoding implements the entropy coder shared by every Opus
// frame, per RFC 6716 Section 4.1. The arithmetic is bit-exact with the
// reference implementation: decoder and encoder must reconstruct identical
// interval splits or the stream desynchronizes irrecoverably.
package rangecoding

// Register layout per RFC 6716 Section 4.1 and libopus celt/mfrngcod.h.
const (
	symBits    = 8                           // bits shifted out per renormalization step
	codeBits   = 32                          // width of the low/range state registers
	symMax     = (1 << symBits) - 1          // 255
	codeTop    = uint32(1) << (codeBits - 1) // 0x80000000
	codeBot    = codeTop >> symBits          // 0x00800000
	codeShift  = codeBits - symBits - 1      // 23
	codeExtra  = (codeBits-2)%symBits + 1    // 7, bits of the partial first symbol
	uintBits   = 8                           // range-coded bits of a uniform value
	windowSize = 32                          // raw-bit accumulator width
)

// maxFrameBytes bounds a single encoded frame. An Opus packet is at most
// 1275 bytes (RFC 6716 Section 3.4), so no frame can be larger.
const maxFrameBytes = 1275

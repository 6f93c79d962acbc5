package rangecoding

import (
	"fmt"

	"github.com/thesyncim/opuscore/internal/bitio"
)

// carryState tracks the byte-emission state machine for carry propagation.
// A byte cannot be committed to the output until a later symbol proves no
// carry will ripple into it, so at most one byte plus a run of 0xFF bytes
// stay pending at any time.
type carryState uint8

const (
	carryEmpty   carryState = iota // nothing buffered yet
	carryPending                   // one byte buffered, plus pendingFF 0xFF bytes
)

// Encoder is the range encoder for one Opus frame, the symmetric inverse of
// Decoder. Range-coded symbol bytes fill the frame from the front and raw
// bits fill it from the back; Finish joins the two regions into the final
// frame buffer.
//
// Like the decoder, an Encoder belongs to a single encode pass.
type Encoder struct {
	buf        *bitio.Buffer
	endWindow  uint32     // raw bits buffered for the back of the frame
	nendBits   int        // valid bits in endWindow
	nbitsTotal int        // whole bits produced, for Tell accounting
	rng        uint32     // size of the current interval
	val        uint32     // low end of the current interval
	carry      carryState
	rem        byte   // buffered output byte, committed once the next carry is known
	pendingFF  uint32 // carry-propagating 0xFF bytes not yet committed
	err        error
}

// NewEncoder returns an encoder with capacity for the largest legal frame.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.Init(make([]byte, maxFrameBytes))
	return e
}

// Init resets the encoder over the given output buffer. The buffer bounds
// the frame: running out of room surfaces as ErrBufferExhausted from Finish.
func (e *Encoder) Init(buf []byte) {
	e.buf = bitio.New(buf)
	e.endWindow = 0
	e.nendBits = 0
	e.nbitsTotal = codeBits + 1
	e.rng = codeTop
	e.val = 0
	e.carry = carryEmpty
	e.rem = 0
	e.pendingFF = 0
	e.err = nil
}

// EncodeSymbol narrows the interval to symbol s under the supplied model.
// The symbol must be within the model's alphabet.
func (e *Encoder) EncodeSymbol(m *ProbabilityModel, s uint32) error {
	if m == nil || len(m.cum) < 2 {
		return ErrInvalidModel
	}
	if int(s) >= len(m.cum) {
		return fmt.Errorf("%w: symbol %d out of range [0, %d)", ErrInvalidModel, s, len(m.cum))
	}
	fl, fh := m.bounds(s)
	e.EncodeBin(fl, fh, m.ftb)
	return nil
}

// Encode narrows the interval to the symbol with cumulative bounds [fl, fh)
// out of total ft. This mirrors libopus ec_encode.
func (e *Encoder) Encode(fl, fh, ft uint32) {
	r := e.rng / ft
	if fl > 0 {
		e.val += e.rng - r*(ft-fl)
		e.rng = r * (fh - fl)
	} else {
		e.rng -= r * (ft - fh)
	}
	e.normalize()
}

// EncodeBin is Encode specialized to a power-of-two total 1<<ftb.
// This mirrors libopus ec_encode_bin.
func (e *Encoder) EncodeBin(fl, fh uint32, ftb uint) {
	if ftb == 0 {
		return
	}
	r := e.rng >> ftb
	if fl > 0 {
		e.val += e.rng - r*(uint32(1)<<ftb-fl)
		e.rng = r * (fh - fl)
	} else {
		e.rng -= r * (uint32(1)<<ftb - fh)
	}
	e.normalize()
}

// EncodeBit encodes a single binary symbol where P(1) = 1/2^logp, the
// inverse of Decoder.DecodeBit.
func (e *Encoder) EncodeBit(val int, logp uint) {
	if logp == 0 {
		return
	}
	r := e.rng
	s := r >> logp
	if val != 0 {
		e.val += r - s
		e.rng = s
	} else {
		e.rng = r - s
	}
	e.normalize()
}

// EncodeICDF encodes symbol s from an inverse cumulative distribution table,
// the inverse of Decoder.DecodeICDF. This mirrors libopus ec_enc_icdf.
func (e *Encoder) EncodeICDF(s int, icdf []uint8, ftb uint) {
	r := e.rng >> ftb
	if s > 0 {
		e.val += e.rng - r*uint32(icdf[s-1])
		e.rng = r * uint32(icdf[s-1]-icdf[s])
	} else {
		e.rng -= r * uint32(icdf[s])
	}
	e.normalize()
}

// EncodeICDF16 is EncodeICDF for uint16 tables.
func (e *Encoder) EncodeICDF16(s int, icdf []uint16, ftb uint) {
	r := e.rng >> ftb
	if s > 0 {
		e.val += e.rng - r*uint32(icdf[s-1])
		e.rng = r * uint32(icdf[s-1]-icdf[s])
	} else {
		e.rng -= r * uint32(icdf[s])
	}
	e.normalize()
}

// EncodeUniform encodes a value uniformly distributed in [0, ft), the
// inverse of Decoder.DecodeUniform. Values wider than uintBits split into a
// range-coded high part and raw low bits.
func (e *Encoder) EncodeUniform(val, ft uint32) {
	if ft <= 1 {
		return
	}
	ftb := uint(ilog(ft - 1))
	if ftb > uintBits {
		ftb -= uintBits
		ft1 := (ft-1)>>ftb + 1
		e.encodeUniform(val>>ftb, ft1)
		e.EncodeRawBits(val&(1<<ftb-1), ftb)
	} else {
		e.encodeUniform(val, ft)
	}
}

// encodeUniform encodes one uniform value with ft <= 1<<uintBits, the
// degenerate fl=val, fh=val+1 case of Encode.
func (e *Encoder) encodeUniform(val, ft uint32) {
	r := e.rng / ft
	if val > 0 {
		e.val += e.rng - r*(ft-val)
		e.rng = r
	} else {
		e.rng -= r * (ft - 1)
	}
	e.normalize()
}

// EncodeRawBits appends n uncoded bits destined for the tail of the frame,
// the inverse of Decoder.DecodeRawBits. n must be at most 25.
func (e *Encoder) EncodeRawBits(val uint32, n uint) {
	if n == 0 {
		return
	}
	if n > windowSize-symBits+1 {
		if e.err == nil {
			e.err = fmt.Errorf("%w: %d raw bits exceeds the %d-bit window", ErrBufferExhausted, n, windowSize-symBits+1)
		}
		return
	}
	window := e.endWindow
	used := e.nendBits
	if used+int(n) > windowSize {
		for used >= symBits {
			e.writeEndByte(byte(window & symMax))
			window >>= symBits
			used -= symBits
		}
	}
	window |= val << used
	used += int(n)
	e.endWindow = window
	e.nendBits = used
	e.nbitsTotal += int(n)
}

// normalize shifts determined high-order bytes out of the interval while
// its width is below codeBot. RFC 6716 Section 4.1.2.1, encoder side.
func (e *Encoder) normalize() {
	for e.rng <= codeBot {
		e.carryOut(int(e.val >> codeShift))
		e.val = (e.val << symBits) & (codeTop - 1)
		e.rng <<= symBits
		e.nbitsTotal += symBits
	}
}

// carryOut feeds one 9-bit output symbol (8 data bits plus a possible carry)
// through the pending-byte state machine. A 0xFF symbol joins the pending
// run; anything else resolves the run, committing the buffered byte and the
// 0xFF bytes with the carry applied. This mirrors libopus ec_enc_carry_out.
func (e *Encoder) carryOut(c int) {
	if c == symMax {
		e.pendingFF++
		return
	}
	carry := c >> symBits
	if e.carry == carryPending {
		e.writeByte(e.rem + byte(carry))
	}
	if e.pendingFF > 0 {
		sym := byte((symMax + carry) & symMax)
		for ; e.pendingFF > 0; e.pendingFF-- {
			e.writeByte(sym)
		}
	}
	e.rem = byte(c & symMax)
	e.carry = carryPending
}

func (e *Encoder) writeByte(c byte) {
	if !e.buf.WriteFront(c) && e.err == nil {
		e.err = fmt.Errorf("%w: frame buffer full at %d bytes", ErrBufferExhausted, e.buf.Size())
	}
}

func (e *Encoder) writeEndByte(c byte) {
	if !e.buf.WriteBack(c) && e.err == nil {
		e.err = fmt.Errorf("%w: frame buffer full at %d bytes", ErrBufferExhausted, e.buf.Size())
	}
}

// Finish flushes enough trailing bytes to make the interval unambiguous,
// appends the raw-bit trailer, and returns the finished frame. The frame is
// sized to the coder's bit accounting, (Tell()+7)/8 bytes, with the gap
// between the range bytes and the raw-bit tail zero-filled: the final
// carryOut leaves one byte buffered, and the zero gap stands in for it. The
// returned buffer, fed back through a Decoder with the same model sequence,
// reproduces the encoded symbols exactly.
//
// The encoder must not be reused after Finish without calling Init.
// This follows libopus ec_enc_done.
func (e *Encoder) Finish() ([]byte, error) {
	// Smallest bit count that pins down a value inside [val, val+rng).
	l := codeBits - ilog(e.rng)
	msk := (codeTop - 1) >> uint(l)
	end := (e.val + msk) &^ msk
	if end|msk >= e.val+e.rng {
		l++
		msk >>= 1
		end = (e.val + msk) &^ msk
	}

	for l > 0 {
		e.carryOut(int(end >> codeShift))
		end = (end << symBits) & (codeTop - 1)
		l -= symBits
	}
	if e.carry == carryPending || e.pendingFF > 0 {
		e.carryOut(0)
	}

	// Flush whole raw-bit bytes to the back region.
	window := e.endWindow
	used := e.nendBits
	for used >= symBits {
		e.writeEndByte(byte(window & symMax))
		window >>= symBits
		used -= symBits
	}

	if e.err != nil {
		return nil, e.err
	}

	data := e.buf.Data()
	front := e.buf.FrontBytes()
	back := e.buf.BackBytes()

	total := (e.Tell() + 7) / 8
	if total < front+back {
		total = front + back
	}
	if total > len(data) {
		e.err = fmt.Errorf("%w: frame needs %d bytes, buffer holds %d", ErrBufferExhausted, total, len(data))
		return nil, e.err
	}

	// Move the raw-bit tail to the end of the frame and zero the gap.
	copy(data[total-back:total], data[len(data)-back:])
	for i := front; i < total-back; i++ {
		data[i] = 0
	}

	if used > 0 {
		// The partial raw-bit window shares the byte before the tail. With
		// no gap left, that byte holds range data and the leftover low bits
		// of the final flush (-l of them) must cover the window.
		if front+back >= total && -l < used {
			e.err = fmt.Errorf("%w: %d trailing raw bits do not fit", ErrBufferExhausted, used)
			return nil, e.err
		}
		data[total-back-1] |= byte(window)
	}

	return data[:total], nil
}

// Tell returns the number of bits produced so far, rounded up to whole bits.
func (e *Encoder) Tell() int {
	return e.nbitsTotal - ilog(e.rng)
}

// TellFrac returns the bits produced with 1/8-bit precision.
func (e *Encoder) TellFrac() int {
	nbits := e.nbitsTotal << 3
	l := ilog(e.rng)
	r := e.rng >> (uint(l) - 16)
	b := int(r>>12) - 8
	if r > tellFracCorrection[b] {
		b++
	}
	return nbits - (l<<3 + b)
}

// RangeBytes returns the number of range-coded bytes committed so far.
func (e *Encoder) RangeBytes() int {
	return e.buf.FrontBytes()
}

// Range returns the current interval width.
func (e *Encoder) Range() uint32 {
	return e.rng
}

// State returns the internal (rng, val) pair, for bit-exact comparisons in
// tests.
func (e *Encoder) State() (uint32, uint32) {
	return e.rng, e.val
}

// Err returns the first buffer error recorded so far, without finishing.
func (e *Encoder) Err() error {
	return e.err
}

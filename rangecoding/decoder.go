package rangecoding

import (
	"fmt"
	"math/bits"

	"github.com/thesyncim/opuscore/internal/bitio"
)

// Decoder is the range decoder for one Opus frame. It consumes range-coded
// symbol bytes from the front of the frame and raw bits from the back; the
// two cursors advance toward each other and a valid stream never needs more
// bits than the frame holds.
//
// A Decoder is exclusively owned by the single decode pass that created it.
// Create a fresh one per frame and discard it once the frame is done.
type Decoder struct {
	buf        *bitio.Buffer
	endWindow  uint32 // raw bits buffered from the back of the frame
	nendBits   int    // valid bits in endWindow
	nbitsTotal int    // whole bits consumed, for Tell accounting
	rng        uint32 // size of the current interval
	val        uint32 // coded value offset within the interval
	ext        uint32 // normalization factor saved by Decode for Update
	rem        int    // partial byte carried between renormalizations
}

// NewDecoder returns a decoder positioned at the start of frame.
func NewDecoder(frame []byte) *Decoder {
	d := &Decoder{}
	d.Init(frame)
	return d
}

// Init resets the decoder over frame, discarding any previous state.
// The first byte is split per RFC 6716 Section 4.1: its top bit seeds val
// and the rest is carried into the first renormalization.
func (d *Decoder) Init(frame []byte) {
	d.buf = bitio.New(frame)
	d.endWindow = 0
	d.nendBits = 0
	d.rng = 1 << codeExtra
	d.rem = int(d.readByte())
	d.val = d.rng - 1 - uint32(d.rem>>(symBits-codeExtra))
	// Counted before normalize so the bits pulled in there are not double
	// charged; matches libopus ec_dec_init.
	d.nbitsTotal = codeBits + 1 - ((codeBits-codeExtra)/symBits)*symBits
	d.ext = 0
	d.normalize()
}

// readByte pulls the next forward byte, substituting zero past the end of
// the frame per RFC 6716. Over-consumption is caught by Tell accounting,
// not here.
func (d *Decoder) readByte() byte {
	c, ok := d.buf.ReadFront()
	if !ok {
		return 0
	}
	return c
}

// normalize restores rng > codeBot, pulling in one byte per iteration.
// RFC 6716 Section 4.1.2.1.
func (d *Decoder) normalize() {
	for d.rng <= codeBot {
		d.nbitsTotal += symBits
		d.rng <<= symBits

		sym := d.rem
		d.rem = int(d.readByte())
		sym = (sym<<symBits | d.rem) >> (symBits - codeExtra)

		d.val = ((d.val << symBits) + uint32(symMax&^sym)) & (codeTop - 1)
	}
}

// overread reports ErrCorruptStream once the decoder has consumed more bits
// than the frame physically holds. The renormalization loop cannot fail in
// the middle of a symbol (it reads virtual zeros), so this is the detection
// point for truncated or corrupt frames.
func (d *Decoder) overread() error {
	if d.Tell() > d.StorageBits() {
		return fmt.Errorf("%w: %d bits consumed of %d available (offset %d)",
			ErrCorruptStream, d.Tell(), d.StorageBits(), d.buf.FrontBytes())
	}
	return nil
}

// DecodeSymbol decodes one symbol under the supplied probability model and
// returns its index in [0, model.NumSymbols()). It consumes exactly the
// bits needed to disambiguate the symbol. A frame without enough bits left
// fails with ErrCorruptStream.
func (d *Decoder) DecodeSymbol(m *ProbabilityModel) (uint32, error) {
	if m == nil || len(m.cum) < 2 {
		return 0, ErrInvalidModel
	}
	fs := d.DecodeBin(m.ftb)
	s, fl, fh := m.locate(fs)
	d.Update(fl, fh, m.Total())
	if err := d.overread(); err != nil {
		return 0, err
	}
	return s, nil
}

// DecodeICDF decodes a symbol from an inverse cumulative distribution table
// (values decreasing from 1<<ftb down to a final 0), the table form used by
// the SILK and CELT layers. ftb is the probability precision in bits.
func (d *Decoder) DecodeICDF(icdf []uint8, ftb uint) (int, error) {
	s := d.rng
	dval := d.val
	r := s >> ftb
	ret := -1
	for {
		t := s
		ret++
		if ret >= len(icdf) {
			return 0, fmt.Errorf("%w: icdf table does not terminate at zero", ErrInvalidModel)
		}
		s = r * uint32(icdf[ret])
		if dval >= s {
			d.val = dval - s
			d.rng = t - s
			d.normalize()
			if err := d.overread(); err != nil {
				return 0, err
			}
			return ret, nil
		}
	}
}

// DecodeICDF16 is DecodeICDF for uint16 tables. SILK tables carry the value
// 256, which does not fit in uint8.
func (d *Decoder) DecodeICDF16(icdf []uint16, ftb uint) (int, error) {
	s := d.rng
	dval := d.val
	r := s >> ftb
	ret := -1
	for {
		t := s
		ret++
		if ret >= len(icdf) {
			return 0, fmt.Errorf("%w: icdf table does not terminate at zero", ErrInvalidModel)
		}
		s = r * uint32(icdf[ret])
		if dval >= s {
			d.val = dval - s
			d.rng = t - s
			d.normalize()
			if err := d.overread(); err != nil {
				return 0, err
			}
			return ret, nil
		}
	}
}

// DecodeBit decodes a single binary symbol where P(1) = 1/2^logp.
// The bottom of the interval codes the rare outcome, per libopus entdec.c.
func (d *Decoder) DecodeBit(logp uint) (int, error) {
	r := d.rng
	dval := d.val
	s := r >> logp

	ret := 0
	if dval < s {
		ret = 1
		d.rng = s
	} else {
		d.val = dval - s
		d.rng = r - s
	}
	d.normalize()
	if err := d.overread(); err != nil {
		return 0, err
	}
	return ret, nil
}

// DecodeUniform decodes a value uniformly distributed in [0, ft). Values
// wider than uintBits split into a range-coded high part and raw low bits,
// mirroring libopus ec_dec_uint.
func (d *Decoder) DecodeUniform(ft uint32) (uint32, error) {
	if ft <= 1 {
		return 0, nil
	}

	ft--
	ftb := ilog(ft)

	if ftb > uintBits {
		ftb -= uintBits
		ft1 := (ft >> uint(ftb)) + 1
		s := d.decode(ft1)
		d.Update(s, s+1, ft1)

		low, err := d.DecodeRawBits(uint(ftb))
		if err != nil {
			return 0, err
		}
		t := s<<uint(ftb) | low
		if t > ft {
			return 0, fmt.Errorf("%w: uniform value %d out of range [0, %d]", ErrCorruptStream, t, ft)
		}
		return t, d.overread()
	}

	ft++
	s := d.decode(ft)
	d.Update(s, s+1, ft)
	return s, d.overread()
}

// DecodeRawBits reads n uncoded bits from the tail of the frame, in reverse
// byte order from the end. Raw bits never disturb the forward symbol
// cursor; requesting bits that would overlap already-consumed symbol bytes
// fails with ErrBufferExhausted. n must be at most 25.
func (d *Decoder) DecodeRawBits(n uint) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n > windowSize-symBits+1 {
		return 0, fmt.Errorf("%w: %d raw bits exceeds the %d-bit window", ErrBufferExhausted, n, windowSize-symBits+1)
	}
	if d.Tell()+int(n) > d.StorageBits() {
		return 0, fmt.Errorf("%w: %d raw bits requested with %d bits left",
			ErrBufferExhausted, n, d.StorageBits()-d.Tell())
	}

	for d.nendBits < int(n) {
		c, ok := d.buf.ReadBack()
		if !ok {
			// Exhausted frames were rejected above; zero-fill keeps the
			// window arithmetic deterministic regardless.
			d.nendBits = int(n)
			break
		}
		d.endWindow |= uint32(c) << d.nendBits
		d.nendBits += symBits
	}

	val := d.endWindow & (1<<n - 1)
	d.endWindow >>= n
	d.nendBits -= int(n)
	d.nbitsTotal += int(n)
	return val, nil
}

// Decode returns the cumulative frequency value of the next symbol under a
// total of ft, without consuming it. Follow with Update once the symbol's
// bounds are known. This mirrors libopus ec_decode.
func (d *Decoder) Decode(ft uint32) uint32 {
	return d.decode(ft)
}

func (d *Decoder) decode(ft uint32) uint32 {
	d.ext = d.rng / ft
	s := d.val / d.ext
	if s+1 > ft {
		s = ft - 1
	}
	return ft - (s + 1)
}

// DecodeBin is Decode specialized to a power-of-two total 1<<ftb, using a
// shift in place of the division. This mirrors libopus ec_decode_bin.
func (d *Decoder) DecodeBin(ftb uint) uint32 {
	if ftb == 0 {
		return 0
	}
	ft := uint32(1) << ftb
	d.ext = d.rng >> ftb
	s := d.val / d.ext
	if s+1 > ft {
		s = ft - 1
	}
	return ft - (s + 1)
}

// Update narrows the interval to the symbol whose cumulative bounds are
// [fl, fh) out of ft, then renormalizes. It must follow a Decode or
// DecodeBin call with the same ft. This mirrors libopus ec_dec_update.
func (d *Decoder) Update(fl, fh, ft uint32) {
	s := d.ext * (ft - fh)
	d.val -= s
	if fl > 0 {
		d.rng = d.ext * (fh - fl)
	} else {
		d.rng -= s
	}
	d.normalize()
}

// Tell returns the number of bits consumed so far, rounded up to whole bits.
func (d *Decoder) Tell() int {
	return d.nbitsTotal - ilog(d.rng)
}

// TellFrac returns the bits consumed with 1/8-bit precision.
func (d *Decoder) TellFrac() int {
	nbits := d.nbitsTotal << 3
	l := ilog(d.rng)
	r := d.rng >> (uint(l) - 16)
	b := int(r>>12) - 8
	if r > tellFracCorrection[b] {
		b++
	}
	return nbits - (l<<3 + b)
}

var tellFracCorrection = [8]uint32{35733, 38967, 42495, 46340, 50535, 55109, 60097, 65535}

// StorageBits returns the total number of bits in the frame.
func (d *Decoder) StorageBits() int {
	return d.buf.Size() * 8
}

// State returns the internal (rng, val) pair, for bit-exact comparisons in
// tests.
func (d *Decoder) State() (uint32, uint32) {
	return d.rng, d.val
}

// Range returns the current interval width.
func (d *Decoder) Range() uint32 {
	return d.rng
}

// ilog is the integer base-2 log: the position of the highest set bit plus
// one, and 0 for input 0.
func ilog(x uint32) int {
	return bits.Len32(x)
}

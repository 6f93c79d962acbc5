package rangecoding

import (
	"fmt"
	"math/bits"
)

// maxModelBits caps the normalization total at 1<<15, the largest
// probability precision used by any Opus symbol context.
const maxModelBits = 15

// ProbabilityModel is a cumulative frequency table over a finite alphabet,
// normalized to a power-of-two total (typically 16 or 256 depending on the
// symbol context). Models are supplied per symbol decision by the SILK/CELT
// collaborator; the coder treats them as immutable borrowed views and never
// caches or mutates them.
type ProbabilityModel struct {
	cum []uint32 // cum[i] = cumulative frequency through symbol i; strictly increasing
	ftb uint     // log2 of the normalization total
}

// NewProbabilityModel builds a model from per-symbol frequencies. Every
// frequency must be non-zero and the frequencies must sum to a power of two
// in [2, 1<<15]; anything else returns ErrInvalidModel.
func NewProbabilityModel(freqs []uint32) (*ProbabilityModel, error) {
	if len(freqs) < 2 {
		return nil, fmt.Errorf("%w: alphabet has %d symbols, need at least 2", ErrInvalidModel, len(freqs))
	}
	cum := make([]uint32, len(freqs))
	var total uint32
	for i, f := range freqs {
		if f == 0 {
			return nil, fmt.Errorf("%w: zero frequency for symbol %d", ErrInvalidModel, i)
		}
		if total+f < total {
			return nil, fmt.Errorf("%w: frequency total overflows", ErrInvalidModel)
		}
		total += f
		cum[i] = total
	}
	return newModel(cum, total)
}

// ModelFromCumulative builds a model from an already-cumulative table.
// The table must be strictly increasing and end at a power-of-two total.
// The slice is copied.
func ModelFromCumulative(cum []uint32) (*ProbabilityModel, error) {
	if len(cum) < 2 {
		return nil, fmt.Errorf("%w: alphabet has %d symbols, need at least 2", ErrInvalidModel, len(cum))
	}
	var prev uint32
	for i, c := range cum {
		if c <= prev {
			return nil, fmt.Errorf("%w: cumulative bounds not strictly increasing at symbol %d", ErrInvalidModel, i)
		}
		prev = c
	}
	out := make([]uint32, len(cum))
	copy(out, cum)
	return newModel(out, prev)
}

func newModel(cum []uint32, total uint32) (*ProbabilityModel, error) {
	if total < 2 || total > 1<<maxModelBits || total&(total-1) != 0 {
		return nil, fmt.Errorf("%w: total %d is not a power of two in [2, %d]", ErrInvalidModel, total, 1<<maxModelBits)
	}
	return &ProbabilityModel{cum: cum, ftb: uint(bits.TrailingZeros32(total))}, nil
}

// NumSymbols returns the alphabet size.
func (m *ProbabilityModel) NumSymbols() int { return len(m.cum) }

// Total returns the normalization total.
func (m *ProbabilityModel) Total() uint32 { return m.cum[len(m.cum)-1] }

// bounds returns the cumulative frequency interval [fl, fh) of symbol s.
func (m *ProbabilityModel) bounds(s uint32) (fl, fh uint32) {
	if s > 0 {
		fl = m.cum[s-1]
	}
	return fl, m.cum[s]
}

// locate returns the symbol whose interval contains the cumulative
// frequency value fs, with its bounds. fs must be below Total().
func (m *ProbabilityModel) locate(fs uint32) (s, fl, fh uint32) {
	for fs >= m.cum[s] {
		s++
	}
	fl, fh = m.bounds(s)
	return s, fl, fh
}

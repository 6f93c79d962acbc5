package rangecoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProbabilityModel(t *testing.T) {
	m, err := NewProbabilityModel([]uint32{4, 2, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumSymbols())
	assert.Equal(t, uint32(8), m.Total())

	fl, fh := m.bounds(0)
	assert.Equal(t, uint32(0), fl)
	assert.Equal(t, uint32(4), fh)

	fl, fh = m.bounds(3)
	assert.Equal(t, uint32(7), fl)
	assert.Equal(t, uint32(8), fh)
}

func TestNewProbabilityModelErrors(t *testing.T) {
	tests := []struct {
		name  string
		freqs []uint32
	}{
		{"nil", nil},
		{"single_symbol", []uint32{8}},
		{"zero_frequency", []uint32{4, 0, 4}},
		{"total_not_power_of_two", []uint32{3, 2, 2}},
		{"total_one", []uint32{1}},
		{"total_too_large", []uint32{1 << 14, 1 << 14, 1 << 14, 1 << 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProbabilityModel(tt.freqs)
			assert.ErrorIs(t, err, ErrInvalidModel)
		})
	}
}

func TestModelFromCumulative(t *testing.T) {
	m, err := ModelFromCumulative([]uint32{4, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumSymbols())
	assert.Equal(t, uint32(8), m.Total())

	// Same alphabet via frequencies must agree.
	m2, err := NewProbabilityModel([]uint32{4, 2, 1, 1})
	require.NoError(t, err)
	for s := uint32(0); int(s) < m.NumSymbols(); s++ {
		fl1, fh1 := m.bounds(s)
		fl2, fh2 := m2.bounds(s)
		assert.Equal(t, fl2, fl1, "symbol %d", s)
		assert.Equal(t, fh2, fh1, "symbol %d", s)
	}
}

func TestModelFromCumulativeErrors(t *testing.T) {
	tests := []struct {
		name string
		cum  []uint32
	}{
		{"nil", nil},
		{"single_entry", []uint32{8}},
		{"not_increasing", []uint32{4, 4, 8}},
		{"decreasing", []uint32{6, 4, 8}},
		{"total_not_power_of_two", []uint32{3, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ModelFromCumulative(tt.cum)
			assert.ErrorIs(t, err, ErrInvalidModel)
		})
	}
}

func TestModelLocate(t *testing.T) {
	m, err := NewProbabilityModel([]uint32{4, 2, 1, 1})
	require.NoError(t, err)

	tests := []struct {
		fs   uint32
		want uint32
	}{
		{0, 0}, {3, 0},
		{4, 1}, {5, 1},
		{6, 2},
		{7, 3},
	}

	for _, tt := range tests {
		s, fl, fh := m.locate(tt.fs)
		assert.Equal(t, tt.want, s, "fs=%d", tt.fs)
		assert.LessOrEqual(t, fl, tt.fs)
		assert.Greater(t, fh, tt.fs)
	}
}

func TestModelLocateMatchesBounds(t *testing.T) {
	m, err := NewProbabilityModel([]uint32{100, 50, 80, 26})
	require.NoError(t, err)

	for fs := uint32(0); fs < m.Total(); fs++ {
		s, fl, fh := m.locate(fs)
		bfl, bfh := m.bounds(s)
		require.Equal(t, bfl, fl, "fs=%d", fs)
		require.Equal(t, bfh, fh, "fs=%d", fs)
	}
}

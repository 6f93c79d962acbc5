// Package bitio provides the bounded byte buffer shared by the range decoder
// and encoder. An Opus frame is read and written from both ends at once:
// range-coded symbol bytes advance from the front while raw (uncoded) bits
// advance from the back, and the two regions meet in the middle.
package bitio

// Buffer wraps a single byte slice with a forward cursor and a backward
// cursor. Read cursors are each bounded by the physical slice only; per
// RFC 6716 the decoder's two cursors may cross, and over-consumption is
// detected by bit accounting in the coder, not here. Write cursors share the
// slice and collide instead: a write that would overlap the opposite region
// fails.
type Buffer struct {
	data  []byte
	front int // bytes consumed or written from the start
	back  int // bytes consumed or written from the end
}

// New returns a Buffer over data. The slice is not copied.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Size returns the total size of the underlying slice in bytes.
func (b *Buffer) Size() int { return len(b.data) }

// FrontBytes returns how many bytes the forward cursor has passed.
func (b *Buffer) FrontBytes() int { return b.front }

// BackBytes returns how many bytes the backward cursor has passed.
func (b *Buffer) BackBytes() int { return b.back }

// Data returns the underlying slice.
func (b *Buffer) Data() []byte { return b.data }

// ReadFront returns the next byte at the forward cursor.
// ok is false once the cursor has passed the end of the slice.
func (b *Buffer) ReadFront() (c byte, ok bool) {
	if b.front >= len(b.data) {
		return 0, false
	}
	c = b.data[b.front]
	b.front++
	return c, true
}

// ReadBack returns the next byte at the backward cursor, walking from the
// last byte toward the first. ok is false once the cursor has passed the
// start of the slice.
func (b *Buffer) ReadBack() (c byte, ok bool) {
	if b.back >= len(b.data) {
		return 0, false
	}
	b.back++
	return b.data[len(b.data)-b.back], true
}

// WriteFront stores c at the forward cursor. It returns false without
// writing when the forward and backward regions would collide.
func (b *Buffer) WriteFront(c byte) bool {
	if b.front+b.back >= len(b.data) {
		return false
	}
	b.data[b.front] = c
	b.front++
	return true
}

// WriteBack stores c at the backward cursor, filling the slice from the end
// toward the front. It returns false without writing when the regions would
// collide.
func (b *Buffer) WriteBack(c byte) bool {
	if b.front+b.back >= len(b.data) {
		return false
	}
	b.back++
	b.data[len(b.data)-b.back] = c
	return true
}

// packet.go implements packet frame extraction per RFC 6716 Section 3.2.

package opuscore

import "fmt"

// RFC 6716 packet bounds.
const (
	// MaxPacketBytes is the largest legal Opus packet (Section 3.4 R1/R2).
	MaxPacketBytes = 1275
	// MaxFramesPerPacket caps code 3 packets at 120ms of audio.
	MaxFramesPerPacket = 48
)

// FrameRef locates one encoded frame inside its packet buffer. Frames are
// (offset, length) ranges into the packet rather than copies, so a 48-frame
// packet costs no per-frame allocation.
type FrameRef struct {
	Offset int // Byte offset from the start of the packet
	Length int // Frame length in bytes; zero-length frames are legal (DTX)
}

// PacketInfo contains parsed information about an Opus packet.
type PacketInfo struct {
	TOC       TOC        // Parsed TOC byte
	Frames    []FrameRef // Frame ranges in packet arrival order
	Padding   int        // Padding bytes at the end of the packet (code 3 only)
	TotalSize int        // Total packet size in bytes
}

// FrameCount returns the number of frames in the packet.
func (p PacketInfo) FrameCount() int {
	return len(p.Frames)
}

// FrameBytes slices frame i out of the packet buffer the info was parsed
// from. The result shares storage with data.
func (p PacketInfo) FrameBytes(data []byte, i int) []byte {
	f := p.Frames[i]
	return data[f.Offset : f.Offset+f.Length]
}

// ParsePacket splits an Opus packet into its frames based on the TOC byte's
// frame code (0-3). On success the frame lengths plus framing overhead and
// padding account for every byte of the packet; any shortfall or overflow
// fails with an error matching ErrMalformedPacket.
func ParsePacket(data []byte) (PacketInfo, error) {
	if len(data) < 1 {
		return PacketInfo{}, ErrPacketTooShort
	}
	if len(data) > MaxPacketBytes {
		return PacketInfo{}, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, len(data))
	}

	toc := ParseTOC(data[0])
	info := PacketInfo{
		TOC:       toc,
		TotalSize: len(data),
	}

	switch toc.FrameCode {
	case 0:
		// Code 0: One frame occupying the remainder of the packet.
		info.Frames = []FrameRef{{Offset: 1, Length: len(data) - 1}}

	case 1:
		// Code 1: Two equal-sized frames.
		frameDataLen := len(data) - 1
		if frameDataLen%2 != 0 {
			return PacketInfo{}, fmt.Errorf("%w: code 1 payload of %d bytes is not even", ErrInvalidPacket, frameDataLen)
		}
		half := frameDataLen / 2
		info.Frames = []FrameRef{
			{Offset: 1, Length: half},
			{Offset: 1 + half, Length: half},
		}

	case 2:
		// Code 2: Two frames, the first with an explicit length.
		if len(data) < 2 {
			return PacketInfo{}, ErrPacketTooShort
		}
		frame1Len, lenBytes, err := parseFrameLength(data, 1)
		if err != nil {
			return PacketInfo{}, err
		}
		frame1Off := 1 + lenBytes
		frame2Len := len(data) - frame1Off - frame1Len
		if frame2Len < 0 {
			return PacketInfo{}, fmt.Errorf("%w: first frame length %d exceeds %d remaining bytes",
				ErrInvalidPacket, frame1Len, len(data)-frame1Off)
		}
		info.Frames = []FrameRef{
			{Offset: frame1Off, Length: frame1Len},
			{Offset: frame1Off + frame1Len, Length: frame2Len},
		}

	case 3:
		// Code 3: Arbitrary number of frames with an explicit count byte.
		if len(data) < 2 {
			return PacketInfo{}, ErrPacketTooShort
		}
		frameCountByte := data[1]
		vbr := (frameCountByte & 0x80) != 0
		hasPadding := (frameCountByte & 0x40) != 0
		m := int(frameCountByte & 0x3F)

		if m == 0 || m > MaxFramesPerPacket {
			return PacketInfo{}, fmt.Errorf("%w: %d frames", ErrInvalidFrameCount, m)
		}

		offset := 2
		padding := 0

		// Padding length chain: each 255 byte adds 254 bytes of padding and
		// continues; the first byte below 255 adds its value and stops.
		if hasPadding {
			for {
				if offset >= len(data) {
					return PacketInfo{}, ErrPacketTooShort
				}
				padByte := int(data[offset])
				offset++
				if padByte == 255 {
					padding += 254
				} else {
					padding += padByte
				}
				if padByte < 255 {
					break
				}
			}
		}

		info.Padding = padding
		info.Frames = make([]FrameRef, m)

		if vbr {
			// VBR: every frame but the last has an explicit length; the
			// last gets whatever remains after padding.
			for i := 0; i < m-1; i++ {
				frameLen, lenBytes, err := parseFrameLength(data, offset)
				if err != nil {
					return PacketInfo{}, err
				}
				offset += lenBytes
				info.Frames[i].Length = frameLen
			}
			used := 0
			for i := 0; i < m-1; i++ {
				used += info.Frames[i].Length
			}
			lastLen := len(data) - offset - padding - used
			if lastLen < 0 {
				return PacketInfo{}, fmt.Errorf("%w: frame lengths and %d padding bytes exceed packet size",
					ErrInvalidPacket, padding)
			}
			info.Frames[m-1].Length = lastLen
		} else {
			// CBR: no per-frame lengths; the payload minus padding divides
			// evenly among the frames.
			frameDataLen := len(data) - offset - padding
			if frameDataLen < 0 {
				return PacketInfo{}, fmt.Errorf("%w: %d padding bytes exceed packet size", ErrInvalidPacket, padding)
			}
			if frameDataLen%m != 0 {
				return PacketInfo{}, fmt.Errorf("%w: %d payload bytes do not divide into %d equal frames",
					ErrInvalidPacket, frameDataLen, m)
			}
			frameLen := frameDataLen / m
			for i := range info.Frames {
				info.Frames[i].Length = frameLen
			}
		}

		for i := range info.Frames {
			info.Frames[i].Offset = offset
			offset += info.Frames[i].Length
		}
	}

	return info, nil
}

// parseFrameLength parses a frame length at the given offset.
// Per RFC 6716 Section 3.2.1, lengths below 252 use one byte; lengths
// 252-1275 use two bytes where length = 4*secondByte + firstByte.
// Returns the length, the number of bytes read, and any error.
func parseFrameLength(data []byte, offset int) (int, int, error) {
	if offset >= len(data) {
		return 0, 0, ErrPacketTooShort
	}

	firstByte := int(data[offset])
	if firstByte < 252 {
		return firstByte, 1, nil
	}

	if offset+1 >= len(data) {
		return 0, 0, ErrPacketTooShort
	}
	secondByte := int(data[offset+1])
	return 4*secondByte + firstByte, 2, nil
}

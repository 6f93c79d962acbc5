// packet_builder.go assembles TOC bytes and encoded frame data into complete
// Opus packets per RFC 6716 Section 3. It is the inverse of ParsePacket;
// the framing code is always dictated by the caller, never inferred.

package opuscore

import "fmt"

// BuildPacket creates a code 0 packet holding a single frame.
func BuildPacket(frame []byte, mode Mode, bandwidth Bandwidth, frameSize int, stereo bool) ([]byte, error) {
	config := ConfigFromParams(mode, bandwidth, frameSize)
	if config < 0 {
		return nil, ErrInvalidConfig
	}
	if len(frame)+1 > MaxPacketBytes {
		return nil, fmt.Errorf("%w: frame of %d bytes", ErrPacketTooLarge, len(frame))
	}

	packet := make([]byte, 1+len(frame))
	packet[0] = GenerateTOC(uint8(config), stereo, 0)
	copy(packet[1:], frame)
	return packet, nil
}

// BuildEqualFramePacket creates a code 1 packet holding two frames of
// identical length. Differing lengths fail with ErrUnequalFrames; use
// BuildTwoFramePacket for those.
func BuildEqualFramePacket(frame1, frame2 []byte, mode Mode, bandwidth Bandwidth, frameSize int, stereo bool) ([]byte, error) {
	config := ConfigFromParams(mode, bandwidth, frameSize)
	if config < 0 {
		return nil, ErrInvalidConfig
	}
	if len(frame1) != len(frame2) {
		return nil, fmt.Errorf("%w: %d vs %d bytes", ErrUnequalFrames, len(frame1), len(frame2))
	}
	if 1+len(frame1)+len(frame2) > MaxPacketBytes {
		return nil, fmt.Errorf("%w: frames of %d bytes", ErrPacketTooLarge, len(frame1)+len(frame2))
	}

	packet := make([]byte, 1+len(frame1)+len(frame2))
	packet[0] = GenerateTOC(uint8(config), stereo, 1)
	copy(packet[1:], frame1)
	copy(packet[1+len(frame1):], frame2)
	return packet, nil
}

// BuildTwoFramePacket creates a code 2 packet holding two independently
// sized frames; the first frame's length is signaled explicitly.
func BuildTwoFramePacket(frame1, frame2 []byte, mode Mode, bandwidth Bandwidth, frameSize int, stereo bool) ([]byte, error) {
	config := ConfigFromParams(mode, bandwidth, frameSize)
	if config < 0 {
		return nil, ErrInvalidConfig
	}
	if len(frame1) > MaxPacketBytes {
		return nil, fmt.Errorf("%w: first frame of %d bytes cannot be length-signaled", ErrPacketTooLarge, len(frame1))
	}
	headerLen := 1 + frameLengthBytes(len(frame1))
	total := headerLen + len(frame1) + len(frame2)
	if total > MaxPacketBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, total)
	}

	packet := make([]byte, total)
	packet[0] = GenerateTOC(uint8(config), stereo, 2)
	offset := 1 + writeFrameLength(packet[1:], len(frame1))
	offset += copy(packet[offset:], frame1)
	copy(packet[offset:], frame2)
	return packet, nil
}

// BuildMultiFramePacket creates a code 3 packet.
// vbr selects per-frame length signaling; CBR requires every frame to have
// the same length. padding appends that many zero bytes after the frames,
// preceded by the padding length chain in the header.
func BuildMultiFramePacket(frames [][]byte, mode Mode, bandwidth Bandwidth, frameSize int, stereo bool, vbr bool, padding int) ([]byte, error) {
	if len(frames) == 0 || len(frames) > MaxFramesPerPacket {
		return nil, fmt.Errorf("%w: %d frames", ErrInvalidFrameCount, len(frames))
	}
	if padding < 0 {
		return nil, fmt.Errorf("%w: negative padding", ErrInvalidPacket)
	}

	config := ConfigFromParams(mode, bandwidth, frameSize)
	if config < 0 {
		return nil, ErrInvalidConfig
	}

	if !vbr {
		for _, f := range frames[1:] {
			if len(f) != len(frames[0]) {
				return nil, fmt.Errorf("%w: %d vs %d bytes", ErrUnequalFrames, len(frames[0]), len(f))
			}
		}
	}

	// Frame count byte: VBR flag | padding flag | count.
	countByte := byte(len(frames) & 0x3F)
	if vbr {
		countByte |= 0x80
	}
	var chain []byte
	if padding > 0 {
		countByte |= 0x40
		chain = paddingChain(padding)
	}

	headerSize := 2 + len(chain)
	totalFrameSize := 0
	for _, f := range frames {
		if len(f) > MaxPacketBytes {
			return nil, fmt.Errorf("%w: frame of %d bytes cannot be length-signaled", ErrPacketTooLarge, len(f))
		}
		totalFrameSize += len(f)
	}
	if vbr {
		// Every frame but the last carries a length prefix.
		for _, f := range frames[:len(frames)-1] {
			headerSize += frameLengthBytes(len(f))
		}
	}

	total := headerSize + totalFrameSize + padding
	if total > MaxPacketBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, total)
	}

	packet := make([]byte, total)
	packet[0] = GenerateTOC(uint8(config), stereo, 3)
	packet[1] = countByte
	offset := 2 + copy(packet[2:], chain)

	if vbr {
		for _, f := range frames[:len(frames)-1] {
			offset += writeFrameLength(packet[offset:], len(f))
		}
	}
	for _, f := range frames {
		offset += copy(packet[offset:], f)
	}
	// The remaining `padding` bytes stay zero.

	return packet, nil
}

// paddingChain encodes the padding length per RFC 6716 Section 3.2.5:
// each 255 byte contributes 254 bytes of padding and continues the chain;
// the terminating byte contributes its own value.
func paddingChain(padding int) []byte {
	var chain []byte
	for padding >= 255 {
		chain = append(chain, 255)
		padding -= 254
	}
	return append(chain, byte(padding))
}

// frameLengthBytes returns the number of bytes needed to signal a frame
// length.
func frameLengthBytes(length int) int {
	if length < 252 {
		return 1
	}
	return 2
}

// writeFrameLength writes a frame length at the start of dst and returns
// the number of bytes written. Lengths of 252-1275 use the two-byte form
// length = 4*secondByte + firstByte with firstByte in 252-255.
func writeFrameLength(dst []byte, length int) int {
	if length < 252 {
		dst[0] = byte(length)
		return 1
	}
	dst[0] = byte(252 + length%4)
	dst[1] = byte((length - 252) / 4)
	return 2
}

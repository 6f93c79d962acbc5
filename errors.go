// errors.go defines public error types for the opuscore package.

package opuscore

import (
	"errors"
	"fmt"
)

// ErrMalformedPacket is the umbrella for every structural packet error:
// TOC/framing inconsistencies detected before any symbol decode. The
// sentinels below all match it under errors.Is.
var ErrMalformedPacket = errors.New("opuscore: malformed packet")

// Structural packet errors.
var (
	// ErrPacketTooShort indicates the packet ended before its framing
	// (TOC, frame count, lengths, padding) was complete.
	ErrPacketTooShort = fmt.Errorf("%w: packet too short", ErrMalformedPacket)

	// ErrPacketTooLarge indicates the packet exceeds the RFC 6716 bound of
	// 1275 bytes. Such packets are rejected before parsing.
	ErrPacketTooLarge = fmt.Errorf("%w: packet exceeds %d bytes", ErrMalformedPacket, MaxPacketBytes)

	// ErrInvalidFrameCount indicates a code 3 frame count outside 1-48.
	ErrInvalidFrameCount = fmt.Errorf("%w: invalid frame count", ErrMalformedPacket)

	// ErrInvalidPacket indicates frame lengths that do not add up to the
	// packet's payload, or framing fields that contradict each other.
	ErrInvalidPacket = fmt.Errorf("%w: invalid packet structure", ErrMalformedPacket)
)

// Builder-side errors.
var (
	// ErrInvalidConfig indicates a mode/bandwidth/frameSize combination with
	// no TOC configuration.
	ErrInvalidConfig = errors.New("opuscore: invalid config for mode/bandwidth/frameSize")

	// ErrUnequalFrames indicates equal-length framing (code 1, or code 3
	// CBR) was requested for frames of differing lengths.
	ErrUnequalFrames = errors.New("opuscore: frames must have identical lengths for equal-length framing")
)

// Package opuscore implements the entropy-coding and packet-framing core of
// the Opus audio codec, per RFC 6716 Sections 3 and 4.1.
//
// This layer is shared by every Opus frame regardless of which sub-codec
// (SILK, CELT, or hybrid) produced the symbols. It is deliberately narrow:
// it multiplexes symbols into and out of byte buffers under caller-supplied
// probability models, and it frames encoded frames into packets. The SILK
// and CELT synthesis pipelines, bit-allocation heuristics, and transport
// (RTP, Ogg) are external collaborators.
//
// # Packet Structure
//
// Each Opus packet starts with a TOC (Table of Contents) byte:
//   - Bits 7-3: Configuration (0-31)
//   - Bit 2: Stereo flag
//   - Bits 1-0: Frame count code (0-3)
//
// Use ParseTOC to extract these fields, and ParsePacket to locate the frame
// boundaries within a packet. The Build* functions are the inverse,
// assembling encoded frames into packets under any of the four framing
// codes. Frames are returned as (offset, length) ranges into the caller's
// packet buffer; nothing is copied.
//
// # Entropy Coding
//
// The rangecoding subpackage holds the range decoder and encoder. Each
// frame gets a fresh coder; coding one frame is strictly sequential, but
// distinct frames share no state and may be processed in parallel by the
// caller.
package opuscore

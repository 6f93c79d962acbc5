package opuscore

import "testing"

func FuzzParsePacket_NoPanic(f *testing.F) {
	f.Add([]byte{0xF8, 0x11, 0x22, 0x33})
	f.Add([]byte{0x00, 0x10})
	f.Add([]byte{0x03, 0x02, 0x10, 0x20})
	f.Add([]byte{0x03, 0xC2, 255, 10, 30})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) == 0 {
			return
		}
		info, err := ParsePacket(data)
		_ = ParseTOC(data[0])
		if err != nil {
			return
		}
		if info.FrameCount() < 1 || info.FrameCount() > MaxFramesPerPacket {
			t.Fatalf("invalid frame count: %d", info.FrameCount())
		}
		// Every frame range must lie inside the packet; zero-length DTX
		// frames are legal.
		for i, fr := range info.Frames {
			if fr.Length < 0 || fr.Offset < 1 || fr.Offset+fr.Length > len(data) {
				t.Fatalf("frame[%d] out of bounds: offset=%d length=%d packet=%d",
					i, fr.Offset, fr.Length, len(data))
			}
		}
		if info.Padding < 0 || info.Padding > len(data) {
			t.Fatalf("invalid padding: %d", info.Padding)
		}
	})
}

func FuzzBuildMultiFramePacket_RoundTrip(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5, 6}, 3, true, 0)
	f.Add([]byte{9, 9, 9, 9}, 2, false, 5)

	f.Fuzz(func(t *testing.T, payload []byte, count int, vbr bool, padding int) {
		if count < 1 || count > MaxFramesPerPacket || padding < 0 || padding > 1000 {
			return
		}
		if len(payload) < count {
			return
		}
		size := len(payload) / count
		frames := make([][]byte, count)
		for i := range frames {
			frames[i] = payload[i*size : (i+1)*size]
		}

		packet, err := BuildMultiFramePacket(frames, ModeCELT, BandwidthFullband, 960, false, vbr, padding)
		if err != nil {
			return
		}

		info, err := ParsePacket(packet)
		if err != nil {
			t.Fatalf("built packet does not parse: %v", err)
		}
		if info.FrameCount() != count {
			t.Fatalf("frame count: got %d, want %d", info.FrameCount(), count)
		}
		if info.Padding != padding {
			t.Fatalf("padding: got %d, want %d", info.Padding, padding)
		}
		for i := range frames {
			got := info.FrameBytes(packet, i)
			if string(got) != string(frames[i]) {
				t.Fatalf("frame %d mismatch", i)
			}
		}
	})
}

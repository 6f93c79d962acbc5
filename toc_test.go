package opuscore

import (
	"testing"
)

func TestParseTOC(t *testing.T) {
	tests := []struct {
		name      string
		toc       byte
		config    uint8
		mode      Mode
		bandwidth Bandwidth
		frameSize int
		stereo    bool
		frameCode uint8
	}{
		// Basic config 0 variations
		{"config0_mono_code0", 0x00, 0, ModeSILK, BandwidthNarrowband, 480, false, 0},
		{"config0_stereo_code0", 0x04, 0, ModeSILK, BandwidthNarrowband, 480, true, 0},
		{"config0_mono_code1", 0x01, 0, ModeSILK, BandwidthNarrowband, 480, false, 1},
		{"config0_mono_code2", 0x02, 0, ModeSILK, BandwidthNarrowband, 480, false, 2},
		{"config0_mono_code3", 0x03, 0, ModeSILK, BandwidthNarrowband, 480, false, 3},
		{"config0_stereo_code3", 0x07, 0, ModeSILK, BandwidthNarrowband, 480, true, 3},

		// SILK NB configs 0-3
		{"silk_nb_10ms", 0x00, 0, ModeSILK, BandwidthNarrowband, 480, false, 0},
		{"silk_nb_20ms", 0x08, 1, ModeSILK, BandwidthNarrowband, 960, false, 0},
		{"silk_nb_40ms", 0x10, 2, ModeSILK, BandwidthNarrowband, 1920, false, 0},
		{"silk_nb_60ms", 0x18, 3, ModeSILK, BandwidthNarrowband, 2880, false, 0},

		// SILK MB configs 4-7
		{"silk_mb_10ms", 0x20, 4, ModeSILK, BandwidthMediumband, 480, false, 0},
		{"silk_mb_20ms", 0x28, 5, ModeSILK, BandwidthMediumband, 960, false, 0},
		{"silk_mb_40ms", 0x30, 6, ModeSILK, BandwidthMediumband, 1920, false, 0},
		{"silk_mb_60ms", 0x38, 7, ModeSILK, BandwidthMediumband, 2880, false, 0},

		// SILK WB configs 8-11
		{"silk_wb_10ms", 0x40, 8, ModeSILK, BandwidthWideband, 480, false, 0},
		{"silk_wb_20ms", 0x48, 9, ModeSILK, BandwidthWideband, 960, false, 0},
		{"silk_wb_40ms", 0x50, 10, ModeSILK, BandwidthWideband, 1920, false, 0},
		{"silk_wb_60ms", 0x58, 11, ModeSILK, BandwidthWideband, 2880, false, 0},

		// Hybrid SWB configs 12-13
		{"hybrid_swb_10ms", 0x60, 12, ModeHybrid, BandwidthSuperwideband, 480, false, 0},
		{"hybrid_swb_20ms", 0x68, 13, ModeHybrid, BandwidthSuperwideband, 960, false, 0},

		// Hybrid FB configs 14-15
		{"hybrid_fb_10ms", 0x70, 14, ModeHybrid, BandwidthFullband, 480, false, 0},
		{"hybrid_fb_20ms", 0x78, 15, ModeHybrid, BandwidthFullband, 960, false, 0},

		// CELT NB configs 16-19
		{"celt_nb_2.5ms", 0x80, 16, ModeCELT, BandwidthNarrowband, 120, false, 0},
		{"celt_nb_5ms", 0x88, 17, ModeCELT, BandwidthNarrowband, 240, false, 0},
		{"celt_nb_10ms", 0x90, 18, ModeCELT, BandwidthNarrowband, 480, false, 0},
		{"celt_nb_20ms", 0x98, 19, ModeCELT, BandwidthNarrowband, 960, false, 0},

		// CELT WB configs 20-23
		{"celt_wb_2.5ms", 0xA0, 20, ModeCELT, BandwidthWideband, 120, false, 0},
		{"celt_wb_5ms", 0xA8, 21, ModeCELT, BandwidthWideband, 240, false, 0},
		{"celt_wb_10ms", 0xB0, 22, ModeCELT, BandwidthWideband, 480, false, 0},
		{"celt_wb_20ms", 0xB8, 23, ModeCELT, BandwidthWideband, 960, false, 0},

		// CELT SWB configs 24-27
		{"celt_swb_2.5ms", 0xC0, 24, ModeCELT, BandwidthSuperwideband, 120, false, 0},
		{"celt_swb_5ms", 0xC8, 25, ModeCELT, BandwidthSuperwideband, 240, false, 0},
		{"celt_swb_10ms", 0xD0, 26, ModeCELT, BandwidthSuperwideband, 480, false, 0},
		{"celt_swb_20ms", 0xD8, 27, ModeCELT, BandwidthSuperwideband, 960, false, 0},

		// CELT FB configs 28-31
		{"celt_fb_2.5ms", 0xE0, 28, ModeCELT, BandwidthFullband, 120, false, 0},
		{"celt_fb_5ms", 0xE8, 29, ModeCELT, BandwidthFullband, 240, false, 0},
		{"celt_fb_10ms", 0xF0, 30, ModeCELT, BandwidthFullband, 480, false, 0},
		{"celt_fb_20ms", 0xF8, 31, ModeCELT, BandwidthFullband, 960, false, 0},

		// Config 31 with all variations
		{"config31_stereo_code0", 0xFC, 31, ModeCELT, BandwidthFullband, 960, true, 0},
		{"config31_mono_code1", 0xF9, 31, ModeCELT, BandwidthFullband, 960, false, 1},
		{"config31_stereo_code2", 0xFE, 31, ModeCELT, BandwidthFullband, 960, true, 2},
		{"config31_stereo_code3", 0xFF, 31, ModeCELT, BandwidthFullband, 960, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toc := ParseTOC(tt.toc)

			if toc.Config != tt.config {
				t.Errorf("Config: got %d, want %d", toc.Config, tt.config)
			}
			if toc.Mode != tt.mode {
				t.Errorf("Mode: got %d, want %d", toc.Mode, tt.mode)
			}
			if toc.Bandwidth != tt.bandwidth {
				t.Errorf("Bandwidth: got %d, want %d", toc.Bandwidth, tt.bandwidth)
			}
			if toc.FrameSize != tt.frameSize {
				t.Errorf("FrameSize: got %d, want %d", toc.FrameSize, tt.frameSize)
			}
			if toc.Stereo != tt.stereo {
				t.Errorf("Stereo: got %v, want %v", toc.Stereo, tt.stereo)
			}
			if toc.FrameCode != tt.frameCode {
				t.Errorf("FrameCode: got %d, want %d", toc.FrameCode, tt.frameCode)
			}
		})
	}
}

func TestGenerateTOC(t *testing.T) {
	tests := []struct {
		name      string
		config    uint8
		stereo    bool
		frameCode uint8
		expected  byte
	}{
		// Basic cases
		{"config0_mono_code0", 0, false, 0, 0x00},
		{"config0_stereo_code0", 0, true, 0, 0x04},
		{"config0_mono_code1", 0, false, 1, 0x01},
		{"config0_mono_code2", 0, false, 2, 0x02},
		{"config0_mono_code3", 0, false, 3, 0x03},
		{"config0_stereo_code3", 0, true, 3, 0x07},

		// Hybrid configs (12-15)
		{"hybrid_swb_10ms", 12, false, 0, 0x60},
		{"hybrid_swb_20ms", 13, false, 0, 0x68},
		{"hybrid_fb_10ms", 14, false, 0, 0x70},
		{"hybrid_fb_20ms", 15, false, 0, 0x78},

		// CELT FB config 31
		{"celt_fb_20ms", 31, false, 0, 0xF8},
		{"celt_fb_20ms_stereo", 31, true, 0, 0xFC},
		{"celt_fb_20ms_code3", 31, true, 3, 0xFF},

		// Verify masking works for out-of-range values
		{"config_masked", 0x3F, false, 0, 0xF8},    // 0x3F & 0x1F = 0x1F = 31
		{"frameCode_masked", 0, false, 0x0F, 0x03}, // 0x0F & 0x03 = 3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTOC(tt.config, tt.stereo, tt.frameCode)
			if got != tt.expected {
				t.Errorf("GenerateTOC(%d, %v, %d) = 0x%02X, want 0x%02X",
					tt.config, tt.stereo, tt.frameCode, got, tt.expected)
			}
		})
	}
}

func TestGenerateTOCRoundTrip(t *testing.T) {
	// Round-trip all 32 configs with all stereo/frameCode combinations.
	for config := uint8(0); config < 32; config++ {
		for _, stereo := range []bool{false, true} {
			for frameCode := uint8(0); frameCode < 4; frameCode++ {
				toc := GenerateTOC(config, stereo, frameCode)
				parsed := ParseTOC(toc)

				if parsed.Config != config {
					t.Errorf("config=%d stereo=%v code=%d: Config mismatch: got %d",
						config, stereo, frameCode, parsed.Config)
				}
				if parsed.Stereo != stereo {
					t.Errorf("config=%d stereo=%v code=%d: Stereo mismatch: got %v",
						config, stereo, frameCode, parsed.Stereo)
				}
				if parsed.FrameCode != frameCode {
					t.Errorf("config=%d stereo=%v code=%d: FrameCode mismatch: got %d",
						config, stereo, frameCode, parsed.FrameCode)
				}
			}
		}
	}
}

func TestConfigFromParams(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		bandwidth Bandwidth
		frameSize int
		expected  int
	}{
		// SILK NB
		{"silk_nb_10ms", ModeSILK, BandwidthNarrowband, 480, 0},
		{"silk_nb_20ms", ModeSILK, BandwidthNarrowband, 960, 1},
		{"silk_nb_40ms", ModeSILK, BandwidthNarrowband, 1920, 2},
		{"silk_nb_60ms", ModeSILK, BandwidthNarrowband, 2880, 3},

		// SILK MB
		{"silk_mb_10ms", ModeSILK, BandwidthMediumband, 480, 4},
		{"silk_mb_20ms", ModeSILK, BandwidthMediumband, 960, 5},

		// SILK WB
		{"silk_wb_10ms", ModeSILK, BandwidthWideband, 480, 8},
		{"silk_wb_20ms", ModeSILK, BandwidthWideband, 960, 9},

		// Hybrid SWB (configs 12-13)
		{"hybrid_swb_10ms", ModeHybrid, BandwidthSuperwideband, 480, 12},
		{"hybrid_swb_20ms", ModeHybrid, BandwidthSuperwideband, 960, 13},

		// Hybrid FB (configs 14-15)
		{"hybrid_fb_10ms", ModeHybrid, BandwidthFullband, 480, 14},
		{"hybrid_fb_20ms", ModeHybrid, BandwidthFullband, 960, 15},

		// CELT NB
		{"celt_nb_2.5ms", ModeCELT, BandwidthNarrowband, 120, 16},
		{"celt_nb_5ms", ModeCELT, BandwidthNarrowband, 240, 17},
		{"celt_nb_10ms", ModeCELT, BandwidthNarrowband, 480, 18},
		{"celt_nb_20ms", ModeCELT, BandwidthNarrowband, 960, 19},

		// CELT FB
		{"celt_fb_2.5ms", ModeCELT, BandwidthFullband, 120, 28},
		{"celt_fb_5ms", ModeCELT, BandwidthFullband, 240, 29},
		{"celt_fb_10ms", ModeCELT, BandwidthFullband, 480, 30},
		{"celt_fb_20ms", ModeCELT, BandwidthFullband, 960, 31},

		// Invalid combinations
		{"invalid_hybrid_wb", ModeHybrid, BandwidthWideband, 960, -1},
		{"invalid_silk_fb", ModeSILK, BandwidthFullband, 960, -1},
		{"invalid_celt_40ms", ModeCELT, BandwidthFullband, 1920, -1},
		{"invalid_framesize", ModeSILK, BandwidthNarrowband, 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConfigFromParams(tt.mode, tt.bandwidth, tt.frameSize)
			if got != tt.expected {
				t.Errorf("ConfigFromParams: got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestValidConfig(t *testing.T) {
	for config := uint8(0); config < 32; config++ {
		if !ValidConfig(config) {
			t.Errorf("ValidConfig(%d) = false, want true", config)
		}
	}
	for _, config := range []uint8{32, 63, 255} {
		if ValidConfig(config) {
			t.Errorf("ValidConfig(%d) = true, want false", config)
		}
	}
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thesyncim/opuscore"
)

// tocCmd represents the toc command
var tocCmd = &cobra.Command{
	Use:   "toc <byte>",
	Short: "Decode a TOC byte",
	Long: `Decode a single TOC byte given as hex (0xFB) or decimal (251)
and print its mode, bandwidth, frame duration, channel flag and
framing code.

Example:
  opuspkt toc 0xFB`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return fmt.Errorf("invalid TOC byte %q: %w", args[0], err)
		}

		toc := opuscore.ParseTOC(byte(v))
		fmt.Printf("config:      %d\n", toc.Config)
		fmt.Printf("mode:        %s\n", modeName(toc.Mode))
		fmt.Printf("bandwidth:   %s\n", bandwidthName(toc.Bandwidth))
		fmt.Printf("frame size:  %gms\n", float64(toc.FrameSize)/48)
		fmt.Printf("stereo:      %t\n", toc.Stereo)
		fmt.Printf("frame code:  %d\n", toc.FrameCode)
		return nil
	},
}

func modeName(m opuscore.Mode) string {
	switch m {
	case opuscore.ModeSILK:
		return "SILK"
	case opuscore.ModeHybrid:
		return "Hybrid"
	case opuscore.ModeCELT:
		return "CELT"
	}
	return "unknown"
}

func bandwidthName(b opuscore.Bandwidth) string {
	switch b {
	case opuscore.BandwidthNarrowband:
		return "narrowband (4kHz)"
	case opuscore.BandwidthMediumband:
		return "mediumband (6kHz)"
	case opuscore.BandwidthWideband:
		return "wideband (8kHz)"
	case opuscore.BandwidthSuperwideband:
		return "superwideband (12kHz)"
	case opuscore.BandwidthFullband:
		return "fullband (20kHz)"
	}
	return "unknown"
}

func init() {
	rootCmd.AddCommand(tocCmd)
}

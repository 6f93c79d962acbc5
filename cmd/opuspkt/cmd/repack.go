package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thesyncim/opuscore"
)

// repackCmd represents the repack command
var repackCmd = &cobra.Command{
	Use:   "repack <packet>",
	Short: "Rebuild a packet with different framing",
	Long: `Parse an Opus packet, then rebuild it from the same frames as a
code 3 packet with the requested padding and VBR setting. Frames and
TOC parameters are preserved; only the framing changes.

The packet is read from a file, or decoded from hex with --hex. The
rebuilt packet is written to --out, or printed as hex.

Example:
  opuspkt repack --hex --padding 10 "fb03 0301 0203"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readPacket(cmd, args[0])
		if err != nil {
			return err
		}

		info, err := opuscore.ParsePacket(data)
		if err != nil {
			return fmt.Errorf("parsing packet: %w", err)
		}

		frames := make([][]byte, info.FrameCount())
		for i := range frames {
			frames[i] = info.FrameBytes(data, i)
		}

		padding, _ := cmd.Flags().GetInt("padding")
		cbr, _ := cmd.Flags().GetBool("cbr")

		packet, err := opuscore.BuildMultiFramePacket(frames, info.TOC.Mode,
			info.TOC.Bandwidth, info.TOC.FrameSize, info.TOC.Stereo, !cbr, padding)
		if err != nil {
			return fmt.Errorf("rebuilding packet: %w", err)
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := os.WriteFile(out, packet, 0644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(packet), out)
			return nil
		}
		fmt.Println(hex.EncodeToString(packet))
		return nil
	},
}

func init() {
	repackCmd.Flags().Bool("hex", false, "Treat the argument as hex bytes instead of a file path")
	repackCmd.Flags().Int("padding", 0, "Padding bytes to add to the rebuilt packet")
	repackCmd.Flags().Bool("cbr", false, "Use CBR framing (requires equal-sized frames)")
	repackCmd.Flags().StringP("out", "o", "", "Write the rebuilt packet to a file")
	rootCmd.AddCommand(repackCmd)
}

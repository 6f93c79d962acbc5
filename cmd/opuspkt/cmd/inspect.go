package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/opuscore"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <packet>",
	Short: "Parse a packet and list its frames",
	Long: `Parse an Opus packet and print the TOC fields, the framing code,
the padding size, and the offset and length of every frame.

The packet is read from a file, or decoded from hex with --hex.

Example:
  opuspkt inspect --hex "fb03 0301 0203"`,
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

		fmt.Printf("size:        %d bytes\n", info.TotalSize)
		fmt.Printf("config:      %d (%s, %s, %gms)\n", info.TOC.Config,
			modeName(info.TOC.Mode), bandwidthName(info.TOC.Bandwidth),
			float64(info.TOC.FrameSize)/48)
		fmt.Printf("stereo:      %t\n", info.TOC.Stereo)
		fmt.Printf("frame code:  %d\n", info.TOC.FrameCode)
		fmt.Printf("padding:     %d bytes\n", info.Padding)
		fmt.Printf("frames:      %d\n", info.FrameCount())
		for i, f := range info.Frames {
			fmt.Printf("  frame %-2d  offset %-4d  %d bytes\n", i, f.Offset, f.Length)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("hex", false, "Treat the argument as hex bytes instead of a file path")
	rootCmd.AddCommand(inspectCmd)
}

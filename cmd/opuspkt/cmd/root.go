package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opuspkt",
	Short: "Inspect and rebuild Opus packet framing",
	Long: `opuspkt decodes Opus TOC bytes and packet framing (RFC 6716
Section 3) and can rebuild packets with a different framing code.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readPacket loads packet bytes from a file, or decodes the argument as hex
// when the --hex flag is set.
func readPacket(cmd *cobra.Command, arg string) ([]byte, error) {
	if isHex, _ := cmd.Flags().GetBool("hex"); isHex {
		data, err := hex.DecodeString(strings.ReplaceAll(arg, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading packet file: %w", err)
	}
	return data, nil
}

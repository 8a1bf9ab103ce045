package cmd

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/ssargent/srex/pkg/image"
)

var errRangeNotInImage = errors.New("address range is not in the image")

const dumpWidth = 16

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <input> <address> [length]",
	Short: "Print the bytes of an address range",
	Long: `Print length bytes (default 1) starting at address as a hex dump. Every
byte of the range must be present in the image.

Example:
  srex get app.s37 0x08000000 64`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[1])
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}
		length := uint64(1)
		if len(args) == 3 {
			if length, err = parseAddress(args[2]); err != nil {
				return fmt.Errorf("invalid length: %w", err)
			}
		}
		return runGet(cmd.OutOrStdout(), specFrom(cmd), args[0], addr, length)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(out io.Writer, spec image.Spec, path string, addr, length uint64) error {
	if length == 0 || length > math.MaxUint64-addr {
		return fmt.Errorf("invalid length %d at 0x%X", length, addr)
	}

	f, err := image.Load(path, spec)
	if err != nil {
		return err
	}

	data, ok := f.GetRange(addr, addr+length)
	if !ok {
		return fmt.Errorf("%w: 0x%08X:0x%08X in %s", errRangeNotInImage, addr, addr+length, path)
	}

	for off := 0; off < len(data); off += dumpWidth {
		line := data[off:min(off+dumpWidth, len(data))]
		fmt.Fprintf(out, "%08X  % X\n", addr+uint64(off), line)
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ssargent/srex/pkg/image"
	"github.com/ssargent/srex/pkg/srecord"
)

var errNoInputs = errors.New("nothing to write, give at least one --bin or --hex input")

type createOptions struct {
	output string
	bins   []string // PATH@ADDR
	hexes  []string
	header string
	start  string
}

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an image from binary and Intel HEX files",
	Long: `Create an image from raw binaries placed at given addresses and from
Intel HEX files. Inputs must not overlap. The output format follows the
extension of the output file.

Examples:
  srex create -o app.s37 --bin boot.bin@0x08000000 --bin app.bin@0x08004000
  srex create -o app.srec --hex radio.hex --header "app v1" --start 0x1000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts createOptions
		opts.output, _ = cmd.Flags().GetString("output")
		opts.bins, _ = cmd.Flags().GetStringArray("bin")
		opts.hexes, _ = cmd.Flags().GetStringArray("hex")
		opts.header, _ = cmd.Flags().GetString("header")
		opts.start, _ = cmd.Flags().GetString("start")

		return runCreate(cmd.OutOrStdout(), specFrom(cmd), opts)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringP("output", "o", "", "Output file (required)")
	createCmd.Flags().StringArray("bin", nil, "Binary input as PATH@ADDRESS (repeatable)")
	createCmd.Flags().StringArray("hex", nil, "Intel HEX input (repeatable)")
	createCmd.Flags().String("header", "", "Text stored in the header record")
	createCmd.Flags().String("start", "", "Start address, overrides one found in the inputs")
	if err := createCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}

func runCreate(out io.Writer, spec image.Spec, opts createOptions) error {
	if len(opts.bins) == 0 && len(opts.hexes) == 0 {
		return errNoInputs
	}

	f := srecord.New()

	for _, arg := range opts.bins {
		path, addr, err := parseBinArg(arg)
		if err != nil {
			return err
		}
		binSpec := spec
		binSpec.Format = image.FormatBinary
		binSpec.BaseAddress = addr
		if err := mergeFile(f, path, binSpec); err != nil {
			return err
		}
	}

	for _, path := range opts.hexes {
		hexSpec := spec
		hexSpec.Format = image.FormatIntelHex
		if err := mergeFile(f, path, hexSpec); err != nil {
			return err
		}
	}

	if opts.header != "" {
		f.SetHeaderData([]byte(opts.header))
	}
	if opts.start != "" {
		addr, err := parseAddress(opts.start)
		if err != nil {
			return fmt.Errorf("invalid start address: %w", err)
		}
		f.SetStartAddress(addr)
	}

	if err := image.Save(opts.output, f, spec); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s: %d bytes in %d chunks\n", opts.output, f.Size(), len(f.Chunks()))
	return nil
}

// mergeFile loads path and merges it into f
func mergeFile(f *srecord.File, path string, spec image.Spec) error {
	part, err := image.Load(path, spec)
	if err != nil {
		return err
	}
	if err := f.Merge(part); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	glog.V(1).Infof("merged %s, image now holds %d bytes", path, f.Size())
	return nil
}

// parseBinArg splits PATH@ADDRESS. The last '@' separates the address so
// paths may contain one.
func parseBinArg(arg string) (string, uint64, error) {
	i := strings.LastIndexByte(arg, '@')
	if i <= 0 || i == len(arg)-1 {
		return "", 0, fmt.Errorf("invalid --bin %q, expected PATH@ADDRESS", arg)
	}
	addr, err := parseAddress(arg[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid --bin %q: %w", arg, err)
	}
	return arg[:i], addr, nil
}

// parseAddress accepts decimal, 0x hex, 0o octal and 0b binary addresses
func parseAddress(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

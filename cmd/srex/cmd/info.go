package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/srex/pkg/image"
	"github.com/ssargent/srex/pkg/store"
)

// imageInfo is the JSON form of the info command output
type imageInfo struct {
	File           string               `json:"file"`
	Header         *string              `json:"header,omitempty"`
	StartAddress   *uint64              `json:"start_address,omitempty"`
	DataRecordType string               `json:"data_record_type"`
	Digest         string               `json:"digest"`
	Layout         *store.ExplainResult `json:"layout"`
}

type infoOptions struct {
	format  string
	samples int
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Describe the contents of an image",
	Long: `Describe an image: header, start address, chunk layout and a digest of
its contents. Images holding the same data report the same digest whatever
their format.

Examples:
  srex info app.s37
  srex info app.hex --format json --samples 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts infoOptions
		opts.format, _ = cmd.Flags().GetString("format")
		opts.samples, _ = cmd.Flags().GetInt("samples")
		return runInfo(cmd.OutOrStdout(), specFrom(cmd), args[0], opts)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().String("format", "table", "Output format (table, json)")
	infoCmd.Flags().Int("samples", 0, "Leading bytes of each chunk to show")
}

func runInfo(out io.Writer, spec image.Spec, path string, opts infoOptions) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	f, err := image.Load(path, spec)
	if err != nil {
		return err
	}

	info := imageInfo{
		File:           path,
		DataRecordType: f.DataRecordType().String(),
		Digest:         fmt.Sprintf("%016x", image.Digest(f)),
		Layout:         f.Explain(store.ExplainOptions{WithSamples: opts.samples}),
	}
	if header, ok := f.HeaderData(); ok {
		s := string(header)
		info.Header = &s
	}
	if start, ok := f.StartAddress(); ok {
		info.StartAddress = &start
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return writeInfoTable(out, &info)
}

func writeInfoTable(out io.Writer, info *imageInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "File:\t%s\n", info.File)
	if info.Header != nil {
		fmt.Fprintf(w, "Header:\t%s\n", strconv.Quote(*info.Header))
	}
	if info.StartAddress != nil {
		fmt.Fprintf(w, "Start address:\t0x%08X\n", *info.StartAddress)
	}
	fmt.Fprintf(w, "Data records:\t%s\n", info.DataRecordType)

	g := info.Layout.Global
	fmt.Fprintf(w, "Size:\t%d bytes in %d chunks\n", g.Bytes, g.Chunks)
	if g.Chunks > 0 {
		fmt.Fprintf(w, "Range:\t0x%08X-0x%08X (%.1f%% filled)\n", g.Low, g.High, g.FillRatio*100)
	}
	fmt.Fprintf(w, "Digest:\t%s\n", info.Digest)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(info.Layout.Segments) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "START\tEND\tSIZE\tGAP BEFORE")
		for _, seg := range info.Layout.Segments {
			fmt.Fprintf(w, "0x%08X\t0x%08X\t%d\t%d\n", seg.Address, seg.End, seg.Size, seg.GapBefore)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for _, sample := range info.Layout.Diagnostics.Samples {
		fmt.Fprintf(out, "0x%08X: %s\n", sample.Address, sample.Data)
	}
	for _, warning := range info.Layout.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/srex/pkg/image"
	"github.com/ssargent/srex/pkg/srecord"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <input>... -o <output>",
	Short: "Merge images into one",
	Long: `Merge images of any supported format into one output file. Inputs must
not overlap and may not name different start addresses. The first header
found is kept.

Example:
  srex merge boot.srec app.hex.zst -o full.s37`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return runMerge(cmd.OutOrStdout(), specFrom(cmd), args, output)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringP("output", "o", "", "Output file (required)")
	if err := mergeCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}

func runMerge(out io.Writer, spec image.Spec, inputs []string, output string) error {
	f := srecord.New()
	for _, path := range inputs {
		if err := mergeFile(f, path, spec); err != nil {
			return err
		}
	}

	if err := image.Save(output, f, spec); err != nil {
		return err
	}

	fmt.Fprintf(out, "Merged %d files into %s: %d bytes in %d chunks\n",
		len(inputs), output, f.Size(), len(f.Chunks()))
	return nil
}

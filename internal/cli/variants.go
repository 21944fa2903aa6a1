package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/coremeter/internal/meter"
)

// variantsCmd lists the group meter names accepted by --meters
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List CPU group meter names",
	Long: `List every CPU group meter with the CPUs it covers and its column count.

Use a name from the first column in --meters or the meters config key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVariants(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func writeVariants(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCPUS\tCOLUMNS\tDISPLAY")
	fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", meter.UnitMeterName, "average (CPU:N for one CPU)", 1, meter.UnitMeterName)
	for _, v := range meter.Variants() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", v.Name, v.Subset, v.Columns, v.UIName)
	}
	return tw.Flush()
}

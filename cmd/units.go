package cmd

import (
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob/units"
	"github.com/spf13/cobra"
	"io"
	"strings"
	"text/tabwriter"
)

var unitsCmd = &cobra.Command{
	Use:   "units [kind]",
	Short: "Print the unit catalog, for every kind or the one given",
	Long: "Prints every unit with its accepted symbols. The alias table is " +
		"validated first, so a broken alias causes a non-zero exit.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases := units.DefaultAliases()
		if err := aliases.Validate(); err != nil {
			return fmt.Errorf("invalid alias table: %w", err)
		}

		kinds := units.Kinds()
		if len(args) == 1 {
			k, err := units.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []units.Kind{k}
		}
		return printUnitCatalog(cmd.OutOrStdout(), kinds)
	},
}

func printUnitCatalog(out io.Writer, kinds []units.Kind) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, k := range kinds {
		q, err := units.Lookup(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s (%s)\n", k.Emoji(), k, q.QuantityType())
		for _, u := range q.Units() {
			fmt.Fprintf(w, "  %s\t%s\n", u.Name, strings.Join(u.Symbols, ", "))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(unitsCmd)
}

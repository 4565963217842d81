package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/asana/internal/presentation"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the accepted genders and time slots",
	Long: `List the values accepted by the gender and slot fields.

Examples:
  asana options
  asana options --json | jq '.slots[].value'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		options := presentation.Options()
		if optionsJSON {
			return presentation.NewFormatter(cmd.OutOrStdout()).FormatOptions(options)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, "Genders:")
		for _, g := range options.Genders {
			_, _ = fmt.Fprintf(out, "  %s\n", g)
		}
		_, _ = fmt.Fprintln(out, "Slots:")
		for _, s := range options.Slots {
			_, _ = fmt.Fprintf(out, "  %-10s %s\n", s.Value, s.Hours)
		}
		return nil
	},
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "print the options as JSON")
	rootCmd.AddCommand(optionsCmd)
}

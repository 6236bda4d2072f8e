package cmd

import (
	"fmt"

	"github.com/krehermann/bytevm/programs"
	"github.com/spf13/cobra"
)

var listVerbose bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the programs in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, e := range programs.All() {
			fmt.Fprintf(out, "%s  %s\n", nameStyle.Render(e.Name), dimStyle.Render(e.Description))
			if listVerbose {
				fmt.Fprintln(out, blockStyle.Render(e.Program.String()))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "Print each program's instructions")
	rootCmd.AddCommand(listCmd)
}

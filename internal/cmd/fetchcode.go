package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

func newFetchCodeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-code <query...>",
		Short: "Search the web and print the code snippets POST /fetchCode would return",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.cfg.RequireSerpAPIKey(); err != nil {
				return err
			}
			result, err := rt.finder(rt.observer("codefinder")).FindCode(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

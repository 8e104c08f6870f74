package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DJSquale/gpt-langchain-agent/internal/server"
)

func newAskCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query...>",
		Short: "Run the agent once and print its answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := rt.agent(rt.observer("agent"))
			if err != nil {
				return err
			}
			result, err := agent.Execute(cmd.Context(), server.PromptPrefix+strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Content)
			return err
		},
	}
}

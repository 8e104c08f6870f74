package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/scrape"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/websearch"
)

func newSearchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Print the search URL WebSearchTool builds for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.callTool(cmd, websearch.Name, websearch.Input{Query: strings.Join(args, " ")})
		},
	}
}

func newScrapeCmd(rt *runtime) *cobra.Command {
	scrapeCmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Fetch a page and print what ScrapeAndFormatTool returns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := scrape.ParseFormat(rt.cfg.ScrapeFormat); err != nil {
				return err
			}
			return rt.callTool(cmd, scrape.Name, scrape.Input{URL: args[0]})
		},
	}
	scrapeCmd.Flags().StringVar(&rt.cfg.ScrapeFormat, "format", rt.cfg.ScrapeFormat, "text or markdown")
	return scrapeCmd
}

// callTool runs one registry tool outside the agent loop.
func (rt *runtime) callTool(cmd *cobra.Command, name string, input any) error {
	encoded, err := json.Marshal(input)
	if err != nil {
		return err
	}

	observer := rt.observer("cli")
	ctx, span := observer.StartSpan(cmd.Context(), observability.SpanToolExecution,
		observability.String(observability.AttrToolName, name),
	)
	defer span.End()

	output, err := rt.registry().Call(ctx, name, string(encoded))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, "tool failed")
		return err
	}
	span.SetStatus(observability.StatusOK, "success")

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

// Package cmd implements the cobra command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DJSquale/gpt-langchain-agent/internal/codefinder"
	"github.com/DJSquale/gpt-langchain-agent/internal/config"
	"github.com/DJSquale/gpt-langchain-agent/patterns/react"
	"github.com/DJSquale/gpt-langchain-agent/providers/ai/openai"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability/slogobs"
	"github.com/DJSquale/gpt-langchain-agent/providers/search/serpapi"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/scrape"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/toolset"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version   string
	CommitSHA string
}

func (b BuildInfo) version() string {
	if b.Version == "" {
		return "dev"
	}
	return b.Version
}

// versionTemplate renders `--version` with the commit when one was stamped.
func (b BuildInfo) versionTemplate() string {
	if b.CommitSHA == "" {
		return "{{.Name}} version {{.Version}}\n"
	}
	return "{{.Name}} version {{.Version}} (" + b.CommitSHA + ")\n"
}

type runtime struct {
	build  BuildInfo
	cfg    config.Config
	cfgErr error
}

// Execute runs the root command and exits non-zero on failure.
func Execute(build BuildInfo, cfg config.Config, cfgErr error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(build, cfg, cfgErr)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the command tree.
func NewRootCmd(build BuildInfo, cfg config.Config, cfgErr error) *cobra.Command {
	rt := &runtime{build: build, cfg: cfg, cfgErr: cfgErr}

	rootCmd := &cobra.Command{
		Use:           "gpt-langchain-agent",
		Short:         "Find web templates and code snippets with a tool-using agent.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.version(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if rt.cfgErr != nil {
				return fmt.Errorf("config: %w", rt.cfgErr)
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetVersionTemplate(build.versionTemplate())

	rootCmd.AddCommand(newServeCmd(rt))
	rootCmd.AddCommand(newAskCmd(rt))
	rootCmd.AddCommand(newMCPCmd(rt))
	rootCmd.AddCommand(newSearchCmd(rt))
	rootCmd.AddCommand(newScrapeCmd(rt))
	rootCmd.AddCommand(newFetchCodeCmd(rt))

	return rootCmd
}

// observer builds the logger for one subcommand; component tags every record.
func (rt *runtime) observer(component string) *slogobs.Observer {
	return slogobs.New(
		slogobs.WithSettings(rt.cfg.LogLevel, rt.cfg.LogFormat),
		slogobs.WithComponent(component),
	)
}

func (rt *runtime) registry() *tool.Registry {
	return toolset.New(
		toolset.WithScrapeFormat(rt.cfg.Format()),
		toolset.WithFetchTimeout(rt.cfg.FetchTimeout),
	)
}

// finder builds the search-and-harvest pipeline behind /fetchCode.
func (rt *runtime) finder(observer *slogobs.Observer) *codefinder.Finder {
	search := serpapi.New(rt.cfg.SerpAPIKey, serpapi.WithBaseURL(rt.cfg.SerpAPIBaseURL))
	return codefinder.New(search,
		codefinder.WithFetcher(scrape.NewFetcher(
			scrape.WithUserAgent(codefinder.UserAgent),
			scrape.WithTimeout(rt.cfg.FetchTimeout),
		)),
		codefinder.WithObserver(observer),
	)
}

// agent wires the configured provider, tools and observer together.
func (rt *runtime) agent(observer *slogobs.Observer) (*react.Agent, error) {
	if err := rt.cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	provider := openai.New(
		openai.WithAPIKey(rt.cfg.OpenAIAPIKey),
		openai.WithBaseURL(rt.cfg.OpenAIBaseURL),
		openai.WithModel(rt.cfg.OpenAIModel),
		openai.WithTemperature(rt.cfg.OpenAITemperature),
	)
	return react.New(provider, rt.registry(),
		react.WithMaxIterations(rt.cfg.MaxIterations),
		react.WithObserver(observer),
	), nil
}

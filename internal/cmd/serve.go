package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DJSquale/gpt-langchain-agent/internal/server"
)

func newServeCmd(rt *runtime) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /fetch-template and POST /fetchCode over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observer := rt.observer("http")
			agent, err := rt.agent(observer)
			if err != nil {
				return err
			}
			if err := rt.cfg.RequireSerpAPIKey(); err != nil {
				observer.Warn(cmd.Context(), "SERPAPI_API_KEY not set, /fetchCode will fail")
			}
			srv := server.New(agent, observer, server.WithCodeFinder(rt.finder(observer)))
			return srv.ListenAndServe(cmd.Context(), rt.cfg.Addr)
		},
	}
	serveCmd.Flags().StringVar(&rt.cfg.Addr, "addr", rt.cfg.Addr, "listen address")
	return serveCmd
}

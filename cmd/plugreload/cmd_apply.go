package main

import (
	"context"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"plugreload.io/livereload"
	"plugreload.io/livereload/htmldoc"
)

const applyTimeout = 10 * time.Second

func applyCmd() *cobra.Command {
	var settle bool

	cmd := &cobra.Command{
		Use:   "apply FILE TAG",
		Short: "Run the reload strategy for TAG against a local HTML file and print the result.",
		Args:  cobra.ExactArgs(2),
		// apply never connects to the server
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "could not open document")
			}
			defer f.Close()

			host, err := htmldoc.Parse(f)
			if err != nil {
				return err
			}

			loop := livereload.NewLoop()
			client, err := livereload.New(rootConfig, host, loop)
			if err != nil {
				return err
			}

			strategy := livereload.Resolve(args[1])
			loop.Post(func() {
				client.Execute(strategy)
				if settle {
					host.CompleteLoads()
				}
			})

			ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
			defer cancel()
			if err := loop.Drain(ctx); err != nil {
				return errors.Wrap(err, "strategy did not finish")
			}

			colors := aurora.NewAurora(!rootConfig.NoColors)
			if n := host.Reloads(rootConfig.TargetWindow); n > 0 {
				rootConfig.Logger.Info(colors.Bold("page:"), " window [", rootConfig.TargetWindow, "] reloaded ", n, " time(s)")
			}
			if n := host.PendingLoads(); n > 0 {
				rootConfig.Logger.Info(colors.Bold("css:"), " ", n, " stylesheet(s) still loading")
			}

			return host.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&settle, "settle", true, "Treat refreshed stylesheets as loaded, removing the originals.")

	return cmd
}

package main

import (
	"github.com/gorilla/websocket"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"plugreload.io/livereload"
)

func listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Print notifications sent by the development server without reloading anything.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := interruptContext()
			defer cancel()

			ch, err := livereload.Dial(ctx, rootConfig)
			if err != nil {
				return err
			}
			defer ch.Close()

			go func() {
				<-ctx.Done()
				ch.Close()
			}()

			colors := aurora.NewAurora(!rootConfig.NoColors)
			rootConfig.Logger.Info(colors.Bold("socket:"), " listening on ", rootConfig.SocketURL())

			for {
				tag, err := ch.Receive()
				if err != nil {
					if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						rootConfig.Logger.Info(colors.Bold("socket:"), colors.Red("closed"))
						return nil
					}
					return errors.Wrap(err, "receive failed")
				}
				rootConfig.Logger.Info(colors.Bold("socket:"), " ", tag, " -> ", livereload.Resolve(tag))
			}
		},
	}
}

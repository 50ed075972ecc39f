package main

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"plugreload.io/livereload"
	"plugreload.io/livereload/roddoc"
)

func watchCmd() *cobra.Command {
	var headless bool

	cmd := &cobra.Command{
		Use:   "watch URL",
		Short: "Open URL in Chrome and keep it reloaded while the development server reports changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageURL, err := url.Parse(args[0])
			if err != nil || pageURL.Host == "" {
				return errors.Errorf("invalid page URL [%s]", args[0])
			}
			// the socket lives on the page's own host unless told otherwise
			if !hostSet {
				rootConfig.ServerHost = pageURL.Host
				rootConfig.Secure = pageURL.Scheme == "https"
			}

			ctx, cancel := interruptContext()
			defer cancel()

			browser, err := roddoc.Launch(headless)
			if err != nil {
				return err
			}
			defer browser.Close()

			page, err := roddoc.Open(browser, pageURL.String())
			if err != nil {
				return err
			}

			loop := livereload.NewLoop()
			client, err := livereload.New(rootConfig, roddoc.New(page), loop)
			if err != nil {
				return err
			}

			ch, err := livereload.Dial(ctx, rootConfig)
			if err != nil {
				return err
			}

			go loop.Run(ctx)

			return client.Run(ctx, ch)
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "Run Chrome without a window.")

	return cmd
}

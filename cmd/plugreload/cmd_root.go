package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"plugreload.io/livereload"
	"plugreload.io/livereload/stdlogger"
)

var (
	rootConfig *livereload.Config
	configPath string
	flagConfig livereload.Config
	quiet      bool
	// hostSet records whether the server host came from the command line or
	// the config file rather than the flag default.
	hostSet bool
)

const (
	offlineAnnotation = "offline"
	offlineHost       = "localhost"
)

func rootCmd() *cobra.Command {
	rootConfig = &livereload.Config{}
	configPath = ""
	flagConfig = livereload.Config{}
	quiet = false
	hostSet = false

	cmd := &cobra.Command{
		Use:           "plugreload",
		Short:         "Live reload client for plug_live_reload development servers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRootConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file. Flags given explicitly override its values.")
	cmd.PersistentFlags().StringVar(&flagConfig.ServerHost, "host", "localhost:4000", "Development server host and port.")
	cmd.PersistentFlags().StringVar(&flagConfig.Path, "path", livereload.DefaultPath, "Socket path on the development server.")
	cmd.PersistentFlags().BoolVar(&flagConfig.Secure, "secure", false, "Connect with wss instead of ws.")
	cmd.PersistentFlags().DurationVar(&flagConfig.DispatchDelay, "delay", 0, "Delay between a notification and the reload.")
	cmd.PersistentFlags().DurationVar(&flagConfig.RepaintDelay, "repaint-delay", livereload.DefaultRepaintDelay, "Delay between a stylesheet refresh and the repaint.")
	cmd.PersistentFlags().StringVar(&flagConfig.TargetWindow, "target-window", "", "Window to reload on page reloads. Empty means the page itself.")
	cmd.PersistentFlags().BoolVar(&flagConfig.NeedsRepaintWorkaround, "repaint-workaround", false, "Force a style recomputation after stylesheet refreshes.")
	cmd.PersistentFlags().BoolVar(&flagConfig.NoColors, "no-colors", false, "Disable colored output.")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Log errors only.")

	cmd.AddCommand(
		applyCmd(),
		listenCmd(),
		watchCmd(),
	)

	return cmd
}

// initRootConfig merges the config file, if any, with the flags and fills in
// the defaults. A flag wins when it was given explicitly or when the file left
// its field unset.
func initRootConfig(cmd *cobra.Command) error {
	if configPath != "" {
		config, err := livereload.LoadConfig(configPath)
		if err != nil {
			return err
		}
		rootConfig = config
	}

	flags := cmd.Flags()
	hostSet = flags.Changed("host") || rootConfig.ServerHost != ""

	override := func(name string, unset bool, apply func()) {
		if flags.Changed(name) || unset {
			apply()
		}
	}
	override("host", rootConfig.ServerHost == "", func() { rootConfig.ServerHost = flagConfig.ServerHost })
	override("path", rootConfig.Path == "", func() { rootConfig.Path = flagConfig.Path })
	override("secure", !rootConfig.Secure, func() { rootConfig.Secure = flagConfig.Secure })
	override("delay", rootConfig.DispatchDelay == 0, func() { rootConfig.DispatchDelay = flagConfig.DispatchDelay })
	override("repaint-delay", rootConfig.RepaintDelay == 0, func() { rootConfig.RepaintDelay = flagConfig.RepaintDelay })
	override("target-window", rootConfig.TargetWindow == "", func() { rootConfig.TargetWindow = flagConfig.TargetWindow })
	override("repaint-workaround", !rootConfig.NeedsRepaintWorkaround, func() { rootConfig.NeedsRepaintWorkaround = flagConfig.NeedsRepaintWorkaround })
	override("no-colors", !rootConfig.NoColors, func() { rootConfig.NoColors = flagConfig.NoColors })

	// commands that never dial only need a host to pass validation
	if rootConfig.ServerHost == "" && cmd.Annotations[offlineAnnotation] != "" {
		rootConfig.ServerHost = offlineHost
	}

	rootConfig.Logger = stdlogger.NewWithOptions(log.New(cmd.OutOrStderr(), "", log.LstdFlags), stdlogger.Options{
		NoColors: rootConfig.NoColors,
		Quiet:    quiet,
	})

	return rootConfig.Init()
}

// interruptContext is cancelled on SIGINT or SIGTERM.
func interruptContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-interrupt:
			rootConfig.Logger.Infof("received signal [%s], shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(interrupt)
		cancel()
	}
}

package livereload

import (
	"context"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

// Client turns asset tags received from the development server into reloads
// of its Host. All methods except Run must be called on the scheduler's loop.
type Client struct {
	config    *Config
	host      Host
	scheduler Scheduler
	colors    aurora.Aurora
	lastStamp int64
}

// New creates a client. Config gets initialized with defaults.
func New(config *Config, host Host, scheduler Scheduler) (*Client, error) {
	if err := config.Init(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if host == nil {
		return nil, errors.New("host not set")
	}
	if scheduler == nil {
		return nil, errors.New("scheduler not set")
	}
	return &Client{
		config:    config,
		host:      host,
		scheduler: scheduler,
		colors:    aurora.NewAurora(!config.NoColors),
	}, nil
}

// Dispatch resolves tag and schedules its strategy after the dispatch delay.
func (c *Client) Dispatch(tag string) Strategy {
	strategy := Resolve(tag)
	c.config.Logger.Info(c.colors.Bold("socket:"), " ", tag, " -> ", strategy)
	c.scheduler.AfterFunc(c.config.DispatchDelay, func() {
		c.Execute(strategy)
	})
	return strategy
}

// Execute runs strategy right away.
func (c *Client) Execute(strategy Strategy) {
	switch strategy {
	case StrategyCSS:
		c.refreshStylesheets()
	case StrategyPage:
		c.reloadPage()
	default:
		c.config.Logger.Errorf("unknown strategy [%d], reloading page", strategy)
		c.reloadPage()
	}
}

func (c *Client) reloadPage() {
	window, err := c.host.Window(c.config.TargetWindow)
	if err != nil {
		c.config.Logger.Errorf("could not find window [%s]: %s", c.config.TargetWindow, err)
		return
	}
	c.config.Logger.Info(c.colors.Bold("page:"), " reloading")
	if err := window.Reload(); err != nil {
		c.config.Logger.Errorf("could not reload window [%s]: %s", c.config.TargetWindow, err)
	}
}

// Run receives tags from ch and posts them to the loop until ctx is done or the
// channel fails. The channel is closed on return. A lost connection is not
// re-established.
func (c *Client) Run(ctx context.Context, ch Channel) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			if err := ch.Close(); err != nil {
				c.config.Logger.Errorf("could not close channel: %s", err)
			}
		case <-done:
		}
	}()

	c.config.Logger.Info(c.colors.Bold("socket:"), c.colors.Green("connected"))

	for {
		tag, err := ch.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			ch.Close()
			return errors.Wrap(err, "receive failed")
		}

		c.scheduler.Post(func() {
			c.Dispatch(tag)
		})
	}
}

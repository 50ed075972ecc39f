package livereload

import (
	"io/ioutil"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"plugreload.io/livereload/logger"
)

const (
	DefaultPath         = "/plug_live_reload/socket"
	DefaultRepaintDelay = 25 * time.Millisecond
	NoReloadAttr        = "data-no-reload"
	PendingRemovalAttr  = "data-pending-removal"
	VersionParam        = "vsn"
)

type Config struct {
	ServerHost             string        `yaml:"serverHost"`             // Host (and port) of the development server, e.g. `localhost:4000`.
	Path                   string        `yaml:"path"`                   // Socket path on the server.
	Secure                 bool          `yaml:"secure"`                 // Use `wss` instead of `ws`.
	DispatchDelay          time.Duration `yaml:"dispatchDelay"`          // Wait between receiving a tag and running its strategy.
	RepaintDelay           time.Duration `yaml:"repaintDelay"`           // Wait between a stylesheet refresh and the repaint nudge.
	TargetWindow           string        `yaml:"targetWindow"`           // Window to reload on page strategy; empty means the current one.
	NeedsRepaintWorkaround bool          `yaml:"needsRepaintWorkaround"` // Host needs a forced style recomputation after swaps.
	NoColors               bool          `yaml:"noColors"`
	Logger                 logger.Logger `yaml:"-"`
	TimeSource             TimeSource    `yaml:"-"`
}

func (c *Config) Init() error {
	if c.ServerHost == "" {
		return errors.New("server host not set")
	}
	if strings.Contains(c.ServerHost, "/") {
		return errors.Errorf("server host [%s] must not contain a scheme or path", c.ServerHost)
	}
	if c.DispatchDelay < 0 {
		return errors.Errorf("dispatch delay [%s] is negative", c.DispatchDelay)
	}
	if c.RepaintDelay < 0 {
		return errors.Errorf("repaint delay [%s] is negative", c.RepaintDelay)
	}

	if c.Path == "" {
		c.Path = DefaultPath
	} else if !strings.HasPrefix(c.Path, "/") {
		c.Path = "/" + c.Path
	}
	if c.RepaintDelay == 0 {
		c.RepaintDelay = DefaultRepaintDelay
	}
	if c.Logger == nil {
		c.Logger = newDefaultLogger(c.NoColors)
	}
	if c.TimeSource == nil {
		c.TimeSource = NewStdTimeSource()
	}

	return nil
}

// SocketURL is the address of the notification channel endpoint.
func (c *Config) SocketURL() string {
	u := url.URL{Scheme: "ws", Host: c.ServerHost, Path: c.Path}
	if c.Secure {
		u.Scheme = "wss"
	}
	return u.String()
}

// LoadConfig reads a YAML config file. Unknown keys are rejected. The result
// still needs Init before use, so that command line overrides can be applied.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config [%s]", path)
	}

	config := &Config{}
	if err := yaml.UnmarshalWithOptions(data, config, yaml.Strict()); err != nil {
		return nil, errors.Wrapf(err, "could not parse config [%s]", path)
	}

	return config, nil
}

type TimeSource interface {
	Now() time.Time
}

type stdTimeSource struct{}

func (*stdTimeSource) Now() time.Time {
	return time.Now()
}

func NewStdTimeSource() TimeSource {
	return &stdTimeSource{}
}

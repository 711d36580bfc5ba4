package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrNoOpener is returned when no browser or URL handler could be started
var ErrNoOpener = errors.New("no browser found")

// opener is one way to hand a URL to the desktop
type opener struct {
	command string
	args    []string // placed before the URL
}

// openers lists the system URL handlers to try in order for each platform
var openers = map[string][]opener{
	"darwin": {
		{command: "open"},
	},
	"linux": {
		{command: "xdg-open"},
		{command: "wslview"},
		{command: "sensible-browser"},
	},
	"windows": {
		{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
	},
}

// Launcher opens web pages in the configured browser or the system default
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	goos    string
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// New creates a Launcher. An empty command uses the platform's URL handler.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// startDetached starts the command without waiting for it to exit
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck // reap the child
	return nil
}

// Open hands url to the browser
func (l *Launcher) Open(url string) error {
	// Tier 1: user configured a specific browser
	if l.command != "" {
		l.logger.Info("using configured browser", "command", l.command)
		args := append(append([]string{}, l.args...), url)
		if err := l.tryLaunch(l.command, args); err != nil {
			return fmt.Errorf("failed to start %s: %w", l.command, err)
		}
		return nil
	}

	// Tier 2: platform URL handlers in order
	candidates, ok := openers[l.goos]
	if !ok {
		candidates = openers["linux"]
	}
	for _, o := range candidates {
		args := append(append([]string{}, o.args...), url)
		err := l.tryLaunch(o.command, args)
		if err == nil {
			l.logger.Info("opened url", "command", o.command, "url", url)
			return nil
		}
		l.logger.Debug("url handler not available", "command", o.command, "error", err)
	}
	return ErrNoOpener
}

// tryLaunch starts command if it is in PATH
func (l *Launcher) tryLaunch(command string, args []string) error {
	if _, err := l.lookPath(command); err != nil {
		return err
	}
	return l.start(command, args...)
}

package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// RenderChromePath is where Render images ship Chrome.
const RenderChromePath = "/usr/bin/google-chrome-stable"

// Config controls how a browser process is located and launched.
type Config struct {
	Headless bool
	ProxyURL string
	Bin      string // explicit executable, wins over every lookup
	CacheDir string // download directory used when no executable is found
	Env      string // deployment environment: local, render, serverless
}

// Flag is a command line switch passed to the browser. An empty Value means a bare switch.
type Flag struct {
	Name  string
	Value string
}

// LaunchFlags are applied by every backend. They keep Chrome usable inside
// containers with a small /dev/shm and no user namespaces.
var LaunchFlags = []Flag{
	{Name: "no-sandbox"},
	{Name: "disable-setuid-sandbox"},
	{Name: "disable-dev-shm-usage"},
	{Name: "disable-gpu"},
	{Name: "disable-accelerated-2d-canvas"},
	{Name: "no-first-run"},
	{Name: "no-zygote"},
	{Name: "disable-extensions"},
	{Name: "disable-blink-features", Value: "AutomationControlled"},
	{Name: "window-size", Value: "1920,1080"},
}

// Browser wraps a rod.Browser and the launcher that started it.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// New launches a browser process and connects to it.
func New(ctx context.Context, cfg Config) (*Browser, error) {
	bin, err := ResolveBin(cfg)
	if err != nil {
		return nil, err
	}

	l := launcher.New().Context(ctx).Headless(cfg.Headless).Bin(bin)
	for _, f := range LaunchFlags {
		if f.Value == "" {
			l = l.Set(flags.Flag(f.Name))
		} else {
			l = l.Set(flags.Flag(f.Name), f.Value)
		}
	}
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{
		browser:  b,
		launcher: l,
	}, nil
}

// NewPage opens a blank tab.
func (b *Browser) NewPage() (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Close shuts the browser down and kills the process.
func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return err
}

// lookups are swapped in tests.
var (
	fileExists = func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
	systemBrowser   = launcher.LookPath
	downloadBrowser = func(dir string) (string, error) {
		b := launcher.NewBrowser()
		if dir != "" {
			b.RootDir = dir
		}
		return b.Get()
	}
)

// ResolveBin picks the browser executable: the configured path, then the
// Render system Chrome, then any browser on the machine, then a download
// into CacheDir.
func ResolveBin(cfg Config) (string, error) {
	if cfg.Bin != "" {
		if fileExists(cfg.Bin) {
			return cfg.Bin, nil
		}
		if p, err := exec.LookPath(cfg.Bin); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("browser executable %q not found", cfg.Bin)
	}

	if cfg.Env == "render" && fileExists(RenderChromePath) {
		return RenderChromePath, nil
	}

	if p, ok := systemBrowser(); ok {
		return p, nil
	}

	slog.Info("No system browser found, downloading one", "dir", cfg.CacheDir)
	p, err := downloadBrowser(cfg.CacheDir)
	if err != nil {
		return "", fmt.Errorf("failed to download browser: %w", err)
	}
	return p, nil
}

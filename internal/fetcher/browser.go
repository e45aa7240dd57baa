package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// BrowserCapturer renders pages in a headless Chromium via Rod and saves
// PNG screenshots.
type BrowserCapturer struct {
	cfg    *config.ScreenshotConfig
	logger *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserCapturer creates a capturer. The browser is launched lazily on
// the first Capture so dry runs never start Chromium.
func NewBrowserCapturer(cfg *config.Config, logger *slog.Logger) *BrowserCapturer {
	return &BrowserCapturer{
		cfg:    &cfg.Screenshot,
		logger: logger.With("component", "browser_capturer"),
	}
}

// Capture navigates to rawURL, waits for the page to settle and writes a
// PNG of the viewport to outPath.
func (bc *BrowserCapturer) Capture(ctx context.Context, rawURL, outPath string) error {
	browser, err := bc.connect()
	if err != nil {
		return err
	}

	start := time.Now()

	var page *rod.Page
	if bc.cfg.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		return &types.FetchError{URL: rawURL, Err: fmt.Errorf("open page: %w", err), Retryable: true}
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx)

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             bc.cfg.Width,
		Height:            bc.cfg.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		bc.logger.Warn("failed to set viewport", "error", err)
	}

	if err := page.Timeout(bc.cfg.Timeout).Navigate(rawURL); err != nil {
		return &types.FetchError{URL: rawURL, Err: err, Retryable: true}
	}
	if err := page.Timeout(bc.cfg.Timeout).WaitLoad(); err != nil {
		bc.logger.Warn("page load timeout, continuing", "url", rawURL, "error", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(bc.cfg.Settle):
	}

	img, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return &types.FetchError{URL: rawURL, Err: fmt.Errorf("screenshot: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}
	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}

	bc.logger.Debug("screenshot captured",
		"url", rawURL,
		"path", outPath,
		"size", len(img),
		"duration", time.Since(start),
	)
	return nil
}

// Close shuts down the browser if it was started.
func (bc *BrowserCapturer) Close() error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.browser == nil {
		return nil
	}
	err := bc.browser.Close()
	bc.browser = nil
	return err
}

func (bc *BrowserCapturer) connect() (*rod.Browser, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.browser != nil {
		return bc.browser, nil
	}

	controlURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("window-size", fmt.Sprintf("%d,%d", bc.cfg.Width, bc.cfg.Height)).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bc.browser = browser
	bc.logger.Info("browser ready", "stealth", bc.cfg.Stealth)
	return browser, nil
}

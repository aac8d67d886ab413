package tui

import (
	"fmt"
	"net/url"

	"github.com/pkg/browser"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
)

type Link struct {
	URL   string
	Label string
}

type linkOpenedMsg struct {
	err error
}

// OpenInBrowser opens http and https URLs with the system browser.
func OpenInBrowser(rawURL string) error {
	if err := checkLink(rawURL); err != nil {
		return err
	}

	if err := browser.OpenURL(rawURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}

	return nil
}

func checkLink(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrLinkUnsupported, err)
	}

	switch parsed.Scheme {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrLinkUnsupported, rawURL)
	}
}

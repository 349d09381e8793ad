// Package update compares the running version against a published one.
package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"
)

// Notice describes an available upgrade.
type Notice struct {
	Current string
	Latest  string
	URL     string
}

func (n Notice) String() string {
	return fmt.Sprintf("sqltree %s is available (running %s), download it from %s", n.Latest, n.Current, n.URL)
}

// Check returns a Notice when latest is newer than current, or nil when
// current is up to date.
func Check(current, latest string) (*Notice, error) {
	cur, err := version.NewVersion(current)
	if err != nil {
		return nil, fmt.Errorf("invalid version format: %w", err)
	}
	next, err := version.NewVersion(latest)
	if err != nil {
		return nil, fmt.Errorf("invalid latest version format: %w", err)
	}

	if !cur.LessThan(next) {
		return nil, nil
	}
	return &Notice{
		Current: cur.String(),
		Latest:  next.String(),
		URL:     DownloadURL(next.String()),
	}, nil
}

// DownloadURL returns the release asset URL for the current platform.
func DownloadURL(v string) string {
	return fmt.Sprintf("https://github.com/satishbabariya/sqltree/releases/download/v%s/sqltree-%s-%s", v, runtime.GOOS, runtime.GOARCH)
}

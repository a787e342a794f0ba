package archive

import (
	"fmt"
	"net/url"
	"strings"
)

// EntryName maps a page URL to its name inside the archive: everything
// after the last slash of the URL path. Root URLs and paths ending in a
// slash map to "index.html". No percent-decoding happens; two URLs sharing
// a basename produce the same entry name.
func EntryName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	// EscapedPath keeps percent-encoding intact; entry names are taken
	// literally from the URL.
	p := u.EscapedPath()
	base := p[strings.LastIndex(p, "/")+1:]
	if base == "" {
		return "index.html", nil
	}
	return base, nil
}

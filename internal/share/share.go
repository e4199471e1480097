// Package share builds and reads the menu links a bar hands to its guests.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Query parameter names of a share link
const (
	ParamBarName     = "barName"
	ParamUnavailable = "unavailable"
	// Fragment scrolls the landing page to the recommendation form
	Fragment = "drinkingman"
)

// DefaultQRSize is the edge length in pixels of generated QR codes
const DefaultQRSize = 256

// ErrInvalidOrigin is returned when a link cannot be built on the origin
var ErrInvalidOrigin = errors.New("invalid origin")

// Menu is what a share link carries
type Menu struct {
	BarName     string   `json:"barName,omitempty"`
	Unavailable []string `json:"unavailable"`
}

// Link builds origin?barName=..&unavailable=a,b#drinkingman. Empty values are
// left out. Query parameters already on origin are kept and any fragment is
// replaced.
func Link(origin string, menu Menu) (string, error) {
	origin = strings.TrimSpace(origin)
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}

	params := u.Query()
	if name := strings.TrimSpace(menu.BarName); name != "" {
		params.Set(ParamBarName, name)
	}
	if unavailable := strings.Join(clean(menu.Unavailable), ","); unavailable != "" {
		params.Set(ParamUnavailable, unavailable)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = params.Encode()
	u.Fragment = Fragment
	u.RawFragment = ""
	return u.String(), nil
}

// Decode reads the menu from link query parameters
func Decode(query url.Values) Menu {
	return Menu{
		BarName:     strings.TrimSpace(query.Get(ParamBarName)),
		Unavailable: SplitList(query.Get(ParamUnavailable)),
	}
}

// SplitList splits a comma-joined list, dropping blanks
func SplitList(raw string) []string {
	return clean(strings.Split(raw, ","))
}

// Merge returns the union of lists in first-seen order. Names compare
// case-insensitively.
func Merge(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, name := range clean(list) {
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, name)
		}
	}
	return out
}

// QRCode renders link as a PNG
func QRCode(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

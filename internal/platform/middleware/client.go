package middleware

import (
	"strings"

	"github.com/mssola/useragent"
)

// ClientName summarises a User-Agent as "name/version", with " (mobile)" appended
// for handheld clients. The console client reports itself as "tcis/<version>".
func ClientName(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "unknown"
	}
	ua := useragent.New(userAgent)
	name, version := ua.Browser()
	if name == "" {
		return "unknown"
	}
	out := name
	if version != "" {
		out += "/" + version
	}
	if ua.Mobile() {
		out += " (mobile)"
	}
	return out
}

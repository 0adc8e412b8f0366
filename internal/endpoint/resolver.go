// Package endpoint resolves the API origin that every request and evidence link is built on.
package endpoint

import (
	"net/url"
	"strconv"
	"strings"
)

// DevPort is the port the API listens on during local development.
const DevPort = 4000

// BuildAPIURL is the build-time override, set with
// -ldflags "-X github.com/robalyx/modlog/internal/endpoint.BuildAPIURL=https://api.example.com".
var BuildAPIURL string

// Sources holds every input the resolver considers, in precedence order.
type Sources struct {
	Runtime string   // Value injected at runtime by the host (flag or config file)
	Build   string   // Build-time or environment override
	Page    *url.URL // Location the viewer was opened from
	DevPort int      // Development port, DevPort when zero
}

// Resolved is the outcome of resolution.
type Resolved struct {
	Base          string // API origin without a trailing slash
	BuildOverride bool   // Whether a build-time override was configured, whichever source won
}

// Resolve returns the API base for the given sources.
func Resolve(src Sources) string {
	return ResolveDetailed(src).Base
}

// ResolveDetailed returns the API base along with where it came from.
func ResolveDetailed(src Sources) Resolved {
	build := strings.TrimSpace(src.Build)
	if build == "" {
		build = strings.TrimSpace(BuildAPIURL)
	}

	res := Resolved{BuildOverride: build != ""}

	switch runtime := strings.TrimSpace(src.Runtime); {
	case runtime != "":
		res.Base = trimSlash(runtime)
	case build != "":
		res.Base = trimSlash(build)
	default:
		res.Base = fromPage(src.Page, src.DevPort)
	}

	return res
}

// ImageURL resolves an evidence reference against the API base.
// Absolute references are returned unchanged.
func ImageURL(base, ref string) string {
	if ref == "" {
		return ""
	}

	if strings.HasPrefix(ref, "http") {
		return ref
	}

	return base + ref
}

// IsLocalHost reports whether a hostname belongs to a development machine or private network.
func IsLocalHost(host string) bool {
	return host == "localhost" ||
		host == "127.0.0.1" ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.")
}

// fromPage applies the host heuristic to the page location.
func fromPage(page *url.URL, devPort int) string {
	host := "localhost"
	scheme := "http"

	if page != nil {
		if h := page.Hostname(); h != "" {
			host = h
		}

		if strings.EqualFold(page.Scheme, "https") {
			scheme = "https"
		}
	}

	if IsLocalHost(host) {
		if devPort <= 0 {
			devPort = DevPort
		}

		return "http://" + host + ":" + strconv.Itoa(devPort)
	}

	return scheme + "://" + host
}

// trimSlash removes a single trailing slash.
func trimSlash(s string) string {
	return strings.TrimSuffix(s, "/")
}

package validator

import (
	"net/url"
	"strings"
)

// ValidateURL accepts http(s) URLs and scheme-less hosts like example.com;
// the prober normalizes the latter before issuing a request.
func ValidateURL(target string) bool {
	if target == "" {
		return false
	}

	if u, err := url.Parse(target); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return true
	}

	if !strings.Contains(target, "://") {
		return true
	}

	return false
}

func ValidateInterval(minutes int) bool {
	return minutes > 0
}

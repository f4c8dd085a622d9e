package http

import (
	"fmt"
	"net/url"
	"strings"
)

// JoinURL appends path to the base URL, keeping any path already on the base.
func JoinURL(baseURL, path string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("base URL must be absolute: %q", baseURL)
	}

	parsedURL.Path = strings.TrimRight(parsedURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return parsedURL.String(), nil
}

//go:build !embed

package frontend

import "net/http"

// Handler returns nil when the binary was built without the embed tag;
// callers fall back to serving assets from the filesystem.
func Handler() http.Handler {
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response from the Zotero API.
type APIError struct {
	StatusCode int
	Status     string // status text, e.g. "Not Found"
	Path       string // request path below /users/<id>
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zotero API error: %d %s", e.StatusCode, e.Status)
}

// IsNotFound returns true if err carries an HTTP 404 from the Zotero API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

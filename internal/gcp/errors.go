package gcp

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// HTTPStatus returns the HTTP status code carried by a Google API error,
// or 0 when err is not one.
func HTTPStatus(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func IsNotFound(err error) bool {
	return HTTPStatus(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return HTTPStatus(err) == http.StatusForbidden
}

func IsRateLimited(err error) bool {
	return HTTPStatus(err) == http.StatusTooManyRequests
}

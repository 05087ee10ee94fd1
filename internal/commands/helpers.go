package commands

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/ppiankov/gcpinventory/internal/gcp"
)

// ExitCodeError signals a non-zero exit code without being a runtime error.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

const (
	hintCredentials = "Configure GCP credentials: run 'gcloud auth application-default login', set GOOGLE_APPLICATION_CREDENTIALS, or pass --credentials-file"
	hintExpired     = "GCP credentials expired. Run 'gcloud auth application-default login' to refresh"
	hintForbidden   = "Insufficient permissions. Ensure your account has the Compute Viewer role (and Pub/Sub Publisher when --pubsub-topic is set)"
	hintRateLimited = "GCP API rate limit hit. Retry later or collect fewer zones per run"
	hintNotFound    = "Resource or API not found. Verify the project ID, zone names, and that the Compute Engine API is enabled"
)

// enhanceError wraps an error with context and suggestions for common GCP issues.
func enhanceError(action string, err error) error {
	hint := apiHint(err)
	if hint == "" {
		hint = messageHint(err.Error())
	}
	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// apiHint maps a *googleapi.Error status to a hint.
func apiHint(err error) string {
	switch {
	case gcp.IsForbidden(err):
		return hintForbidden
	case gcp.IsRateLimited(err):
		return hintRateLimited
	case gcp.IsNotFound(err):
		return hintNotFound
	case gcp.HTTPStatus(err) == http.StatusUnauthorized:
		return hintExpired
	}
	return ""
}

func messageHint(msg string) string {
	switch {
	case strings.Contains(msg, "could not find default credentials"):
		return hintCredentials
	case strings.Contains(msg, "oauth2: cannot fetch token"):
		return hintExpired
	case strings.Contains(msg, "403") || strings.Contains(msg, "Forbidden") || strings.Contains(msg, "PERMISSION_DENIED"):
		return hintForbidden
	case strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return hintRateLimited
	case strings.Contains(msg, "404") || strings.Contains(msg, "notFound"):
		return hintNotFound
	}
	return ""
}

// parseExcludeLabels converts a slice of "key=value" or "key" strings to a map.
// Key-only entries (no "=") become key→"" which triggers key-only matching.
func parseExcludeLabels(labels []string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	result := make(map[string]string, len(labels))
	for _, l := range labels {
		k, v, _ := strings.Cut(l, "=")
		result[k] = v
	}
	return result
}

// parseResourceIDs converts a slice of resource ID strings to a lookup map.
func parseResourceIDs(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	result := make(map[string]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result
}

// mergeSlices combines two string slices, deduplicating entries.
func mergeSlices(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	return lo.Uniq(append(append([]string{}, a...), b...))
}

// firstNonEmpty returns flag when set, falling back to the configured value.
func firstNonEmpty[T any](flag, configured []T) []T {
	if len(flag) > 0 {
		return flag
	}
	return configured
}

func writeJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

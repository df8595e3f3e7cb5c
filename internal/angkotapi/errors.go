package angkotapi

import "fmt"

const maxErrorBody = 512

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		return fmt.Sprintf("angkot api: %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("angkot api: %s: status %d: %s", e.Path, e.StatusCode, body)
}

package apiclient

import "fmt"

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apiclient: %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("apiclient: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

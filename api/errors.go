package api

import "fmt"

// Error is returned when the API responds with a status other than 200.
// The message is the raw response body.
type Error struct {
	StatusCode int
	Body       string
}

func (err *Error) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("api call failed with status %d", err.StatusCode)
	}
	return err.Body
}

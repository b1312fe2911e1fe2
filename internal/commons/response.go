package commons

import "time"

// ErrorMessage is the error body returned by every failing endpoint.
type ErrorMessage struct {
	Timestamp    time.Time `json:"timestamp"`
	ErrorMessage string    `json:"errorMessage"`
	StatusCode   int       `json:"statusCode"`
}

func NewErrorMessage(statusCode int, message string) ErrorMessage {
	return ErrorMessage{
		Timestamp:    time.Now().UTC(),
		ErrorMessage: message,
		StatusCode:   statusCode,
	}
}

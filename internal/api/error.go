package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks 401 responses. By the time a caller sees it the
// gateway has already cleared the session.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response normalized into one displayable message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// genericMessage is shown when the response body carries no usable detail.
const genericMessage = "request failed"

// normalizeDetail extracts a single message from an error body. The server
// sends either {"detail": "..."} or {"detail": [{"msg": "..."}, ...]}
// (validation errors); anything else falls back to a generic message.
func normalizeDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return genericMessage
	}

	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil && msg != "" {
		return msg
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		out := ""
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if out != "" {
				out += "; "
			}
			out += it.Msg
		}
		if out != "" {
			return out
		}
	}
	return genericMessage
}

// Message returns the displayable message for any error coming out of the
// gateway: the normalized server detail for remote rejections, a generic
// transport message otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return genericMessage
}

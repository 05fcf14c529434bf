package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrConnectionFailure matches every *APIError.
var ErrConnectionFailure = errors.New("connection failure")

const maxErrorBody = 512

// APIError is a non-200 answer from the storefront.
type APIError struct {
	Method  string
	URL     string
	Status  int
	Code    any
	Message string
	Body    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
	}
	return fmt.Sprintf("%s: %s %s status=%d code=%v message=%s",
		ErrConnectionFailure, e.Method, e.URL, e.Status, e.Code, msg)
}

func (e *APIError) Is(target error) bool { return target == ErrConnectionFailure }

// errorBody is the json error shape; older routes use detail for message.
type errorBody struct {
	Code    any     `json:"code"`
	Message *string `json:"message"`
	Detail  *string `json:"detail"`
}

// ParseAPIError keeps body as is and lifts code and message out of it when
// it is json.
func ParseAPIError(method, url string, status int, body []byte) *APIError {
	e := &APIError{Method: method, URL: url, Status: status, Body: string(body)}

	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return e
	}
	e.Code = eb.Code
	switch {
	case eb.Message != nil:
		e.Message = *eb.Message
	case eb.Detail != nil:
		e.Message = *eb.Detail
	}
	return e
}

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorBody covers both error shapes we receive: {"error": "msg"} from the
// chat server and {"error": {"code": 400, "message": "EMAIL_EXISTS"}} from
// Google APIs.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type googleError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func mapHTTPError(service string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp.Body())

	var err error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		err = fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		err = fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		err = fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		err = fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		err = fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusBadGateway:
		err = fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusInternalServerError:
		err = fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		err = errors.New(body)
	}

	return &UpstreamError{Service: service, Status: resp.StatusCode(), Err: err}
}

// errorMessage extracts a human readable message from an error body and
// falls back to the raw text.
func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Error) > 0 {
		var msg string
		if json.Unmarshal(body.Error, &msg) == nil {
			return msg
		}
		var g googleError
		if json.Unmarshal(body.Error, &g) == nil && g.Message != "" {
			return g.Message
		}
	}

	return strings.TrimSpace(string(raw))
}

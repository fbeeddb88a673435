package audd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when audd.io answered but could not identify the
// song.
var ErrNotFound = errors.New("song not found")

// APIError is an application-level error reported by audd.io.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("audd.io error code %d: %s", e.Code, e.Message)
}

// Response is a decoded recognition answer.
type Response struct {
	Status string
	// Result is the "result" object: the baseline fields plus one
	// sub-document per returned source.
	Result json.RawMessage
	// Raw is the body exactly as received.
	Raw json.RawMessage
}

type envelope struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"error_code"`
		Message string `json:"error_message"`
	} `json:"error"`
}

// ParseResponse decodes a recognition body. A "status":"error" body yields
// *APIError and a null result yields ErrNotFound; in both cases the
// response is returned too.
func ParseResponse(body []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode audd.io response: %w", err)
	}

	resp := &Response{Status: env.Status, Result: env.Result, Raw: body}

	switch env.Status {
	case "success":
		if isNull(env.Result) {
			return resp, ErrNotFound
		}
		return resp, nil
	case "error":
		apiErr := &APIError{}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return resp, apiErr
	default:
		return resp, fmt.Errorf("unexpected audd.io status %q", env.Status)
	}
}

// Pretty renders the raw body indented by four spaces with sorted keys.
func (r *Response) Pretty() ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode audd.io response: %w", err)
	}
	return json.MarshalIndent(v, "", "    ")
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

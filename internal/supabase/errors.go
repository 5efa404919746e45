package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a rejection returned by the hosted service: invalid
// credentials, duplicate registration, a row-level policy violation. The
// message is kept verbatim so it can be shown to the user unchanged.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// decodeError maps an error response body onto an APIError. GoTrue uses
// {"msg": ...} or {"error_description": ...}, PostgREST uses
// {"message": ..., "code": ...}; the code field is a number in one and a
// string in the other.
func decodeError(status int, body []byte) error {
	var payload struct {
		Msg              string          `json:"msg"`
		Message          string          `json:"message"`
		ErrorField       string          `json:"error"`
		ErrorDescription string          `json:"error_description"`
		Code             json.RawMessage `json:"code"`
	}

	apiErr := &APIError{Status: status}

	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Msg != "":
			apiErr.Message = payload.Msg
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.ErrorDescription != "":
			apiErr.Message = payload.ErrorDescription
		case payload.ErrorField != "":
			apiErr.Message = payload.ErrorField
		}
		apiErr.Code = strings.Trim(string(payload.Code), `"`)
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}

	return apiErr
}

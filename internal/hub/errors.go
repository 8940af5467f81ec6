package hub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx answer from the hub. The body is kept in both raw and
// parsed forms: Galaxy endpoints answer with DRF-style field error maps while
// Pulp endpoints answer with a single "detail" message.
type APIError struct {
	StatusCode int
	StatusText string
	// Fields maps a field name (or "non_field_errors", "detail", "__all__")
	// to its error messages, when the body was structured.
	Fields map[string][]string
	// Body is the raw response body, for unstructured failures.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if msg := e.FieldMessage(); msg != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.StatusText, msg)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

// FieldMessage joins all structured error messages into one string, in
// field-name order, or returns "" when the body carried none.
func (e *APIError) FieldMessage() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var parts []string
	for _, key := range keys {
		parts = append(parts, e.Fields[key]...)
	}
	return strings.Join(parts, " ")
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	apiErr.Body = string(body)
	apiErr.Fields = parseErrorBody(body)
	return apiErr
}

// parseErrorBody extracts field error messages from the known hub error
// shapes. Returns nil when the body is not structured JSON.
func parseErrorBody(body []byte) map[string][]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	fields := map[string][]string{}
	for key, val := range raw {
		var list []string
		if err := json.Unmarshal(val, &list); err == nil {
			fields[key] = list
			continue
		}
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			fields[key] = []string{single}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

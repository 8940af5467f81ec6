package alerts

import (
	"errors"
	"fmt"

	"github.com/galaxyops/hub-console/internal/hub"
)

// ErrorDescription converts any error into a renderable alert description.
// Structured hub errors get their field messages folded into the per-status
// wording; errors with no HTTP response fall back to their own message.
// It is total: any input yields a usable string.
func ErrorDescription(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *hub.APIError
	if errors.As(err, &apiErr) {
		return statusMessage(apiErr.StatusCode, apiErr.StatusText, apiErr.FieldMessage())
	}
	return err.Error()
}

// statusMessage is the per-status error wording shown to operators.
func statusMessage(status int, statusText, detail string) string {
	if detail != "" {
		return fmt.Sprintf("Error %d - %s: %s", status, statusText, detail)
	}

	switch status {
	case 500:
		return fmt.Sprintf("Error %d - %s: The server encountered an error and was unable to complete your request.", status, statusText)
	case 401:
		return fmt.Sprintf("Error %d - %s: You do not have the required permissions to proceed with this request. Please contact the server administrator for elevated permissions.", status, statusText)
	case 403:
		return fmt.Sprintf("Error %d - %s: Forbidden: You do not have the required permissions to proceed with this request. Please contact the server administrator for elevated permissions.", status, statusText)
	case 404:
		return fmt.Sprintf("Error %d - %s: The server could not find the requested URL.", status, statusText)
	case 400:
		return fmt.Sprintf("Error %d - %s: The server was unable to complete your request.", status, statusText)
	default:
		return fmt.Sprintf("Error %d - %s", status, statusText)
	}
}

// FailureAlert builds the danger alert for a failed operation. The title
// names the operation; the description carries the normalized error.
func FailureAlert(title string, err error) Alert {
	return Danger(title, ErrorDescription(err))
}

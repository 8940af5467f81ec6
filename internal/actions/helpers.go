package actions

import (
	"github.com/galaxyops/hub-console/internal/alerts"
)

// failure is the danger alert every action rejection funnels into; the
// description carries the normalized error (never a raw rejection).
func failure(title string, err error) alerts.Alert {
	return alerts.FailureAlert(title, err)
}

// Package model defines core data structures for sqlmux.
package model

// OptionKind classifies how an option is rendered on the command line.
type OptionKind int

const (
	// KindText is a free-text option; its value is wrapped in double quotes
	// and the option is omitted while the value is empty.
	KindText OptionKind = iota
	// KindBool is a bare flag emitted only when the value is true.
	KindBool
	// KindChoice is an unquoted --flag=value option emitted only when the
	// value differs from its declared default.
	KindChoice
	// KindTechnique is one of the injection technique toggles folded into
	// the composite --technique= token.
	KindTechnique
)

// ScanStatus represents the current state of a scan session.
type ScanStatus string

const (
	// ScanStatusIdle indicates no scan is running.
	ScanStatusIdle ScanStatus = "idle"
	// ScanStatusRunning indicates the external process is active.
	ScanStatusRunning ScanStatus = "running"
	// ScanStatusStopped indicates the scan finished or was cancelled.
	ScanStatusStopped ScanStatus = "stopped"
	// ScanStatusError indicates the scan could not be started.
	ScanStatusError ScanStatus = "error"
)

// Outcome is the terminal result of one scan session.
type Outcome int

const (
	// OutcomeNone means the session has not finished yet.
	OutcomeNone Outcome = iota
	// OutcomeSuccess means the process exited cleanly.
	OutcomeSuccess
	// OutcomeFailure means the process failed to start, exited abnormally,
	// or its output stream broke.
	OutcomeFailure
)

// NotificationConfig holds completion notification settings.
type NotificationConfig struct {
	// Desktop enables desktop notifications via system APIs.
	Desktop bool `json:"desktop" mapstructure:"desktop"`
	// WebhookURL is the optional URL to send webhook notifications.
	WebhookURL string `json:"webhook_url,omitempty" mapstructure:"webhook_url"`
}

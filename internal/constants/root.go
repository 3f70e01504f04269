package constants

const (
	AppName           = "focusflow"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/focusflow/focusflow.db"

	// DateFormat is the standard day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Tray companion process discovery
	TrayAppIdentifier    = "focusflow-tray"
	NotifierLockfileName = "notifier.lock"

	// NotificationDurationMs is how long delivered notifications stay visible
	NotificationDurationMs uint32 = 8000
)

package engine

import "github.com/MMR-MINGriyue/focusflow/internal/models"

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventSound        EventType = "sound"
	EventNotification EventType = "notification"
)

// Notification event names consumed by the notification gateway.
const (
	NotifyEfficiencyRatingRequested = "efficiency-rating-requested"
	NotifyMicroBreakStarted         = "micro-break-started"
	NotifyForcedBreakStarted        = "forced-break-started"
)

// NotificationPayload carries the session details for a notification.
type NotificationPayload struct {
	DurationMinutes int          `json:"duration_minutes"`
	SessionType     models.State `json:"session_type"`
	SessionID       string       `json:"session_id"`
}

// Notification is a single message produced for the notification gateway.
type Notification struct {
	Event   string              `json:"event"`
	Payload NotificationPayload `json:"payload"`
}

// Event is one emitted engine update. The engine never calls gateways
// itself; transitions return events and the driver dispatches them after
// applying the state, which keeps transition logic free of reentrancy.
type Event struct {
	Type         EventType
	State        models.State
	Remaining    uint32
	Total        uint32
	Sound        models.SoundKey
	Notification *Notification
}

// PersistenceGateway loads and saves engine snapshots. A load that finds
// nothing (or nothing parseable) reports ok=false rather than an error so
// the engine can fall back to fresh defaults.
type PersistenceGateway interface {
	LoadSnapshot() (snapshot models.Snapshot, ok bool, err error)
	SaveSnapshot(models.Snapshot) error
}

// NotificationGateway receives notification events.
type NotificationGateway interface {
	Notify(Notification) error
}

// SoundGateway receives sound cue keys.
type SoundGateway interface {
	Play(models.SoundKey) error
}

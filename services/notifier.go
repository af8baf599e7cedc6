package services

// Event names pushed to staff screens.
const (
	EventGuestCreated    = "guest_created"
	EventGuestCheckedIn  = "guest_checked_in"
	EventAnalyticsUpdate = "analytics_update"
	EventClubChanged     = "club_changed"
)

// Notifier fans events out to connected staff screens.
type Notifier interface {
	Broadcast(event string, data interface{})
}

type nopNotifier struct{}

func (nopNotifier) Broadcast(string, interface{}) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

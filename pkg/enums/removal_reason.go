package enums

// RemovalReason records which trigger removed a notification.
type RemovalReason string

const (
	RemovalReasonDismissed RemovalReason = "dismissed"
	RemovalReasonExpired   RemovalReason = "expired"
	RemovalReasonCleared   RemovalReason = "cleared"
)

// String implements fmt.Stringer.
func (r RemovalReason) String() string {
	return string(r)
}

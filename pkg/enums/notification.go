package enums

import (
	"fmt"
	"strings"
)

// NotificationKind selects toast styling and whether a subject name is shown.
type NotificationKind string

const (
	NotificationKindSuccess NotificationKind = "success"
	NotificationKindError   NotificationKind = "error"
	NotificationKindInfo    NotificationKind = "info"
	NotificationKindWarning NotificationKind = "warning"
	NotificationKindLogin   NotificationKind = "login"
	NotificationKindLogout  NotificationKind = "logout"
)

var validNotificationKinds = []NotificationKind{
	NotificationKindSuccess,
	NotificationKindError,
	NotificationKindInfo,
	NotificationKindWarning,
	NotificationKindLogin,
	NotificationKindLogout,
}

// String implements fmt.Stringer.
func (n NotificationKind) String() string {
	return string(n)
}

// IsValid checks whether the given kind matches the canonical enum.
func (n NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// ShowsSubject reports whether the kind renders a subject name (login/logout only).
func (n NotificationKind) ShowsSubject() bool {
	return n == NotificationKindLogin || n == NotificationKindLogout
}

// ParseNotificationKind converts raw strings into NotificationKind.
func ParseNotificationKind(value string) (NotificationKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validNotificationKinds {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}

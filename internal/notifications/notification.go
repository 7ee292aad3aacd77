package notifications

import (
	"time"

	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/google/uuid"
)

// Notification is a transient toast. SubjectName is only set for login/logout kinds.
type Notification struct {
	ID          uuid.UUID              `json:"id"`
	Kind        enums.NotificationKind `json:"kind"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	SubjectName string                 `json:"subject_name,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

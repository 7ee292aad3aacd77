package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-core/api/middleware"
	"github.com/angelmondragon/storefront-core/api/responses"
	"github.com/angelmondragon/storefront-core/api/validators"
	"github.com/angelmondragon/storefront-core/internal/notifications"
	"github.com/angelmondragon/storefront-core/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-core/pkg/errors"
	"github.com/angelmondragon/storefront-core/pkg/logger"
)

// NotificationQueues is the per-session notification store. Reads must not
// allocate state for sessions that have nothing live.
type NotificationQueues interface {
	Push(sessionID string, kind enums.NotificationKind, title, message, subjectName string) (uuid.UUID, error)
	List(sessionID string) []notifications.Notification
	Dismiss(sessionID string, id uuid.UUID) bool
}

type pushNotificationRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=success error info warning login logout"`
	Title       string `json:"title" validate:"required,max=120"`
	Message     string `json:"message" validate:"max=500"`
	SubjectName string `json:"subject_name" validate:"max=120"`
}

// ListNotifications returns the live notifications for the session in creation order.
func ListNotifications(hub NotificationQueues, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := hub.List(middleware.SessionIDFromContext(r.Context()))
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func PushNotification(hub NotificationQueues, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pushNotificationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseNotificationKind(req.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid notification kind"))
			return
		}

		id, err := hub.Push(middleware.SessionIDFromContext(r.Context()), kind, req.Title, req.Message, req.SubjectName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"id": id.String()})
	}
}

// DismissNotification removes a notification. Unknown IDs are a no-op and still return 200.
func DismissNotification(hub NotificationQueues, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "notificationId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid notification id"))
			return
		}

		removed := hub.Dismiss(middleware.SessionIDFromContext(r.Context()), id)
		responses.WriteSuccess(w, map[string]bool{"dismissed": removed})
	}
}

func notify(r *http.Request, hub NotificationQueues, logg *logger.Logger, sessionID string, kind enums.NotificationKind, title, message string) {
	if hub == nil {
		return
	}
	if _, err := hub.Push(sessionID, kind, title, message, ""); err != nil && logg != nil {
		logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "notification push failed")
	}
}

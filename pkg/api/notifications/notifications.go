package notifications

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
)

// send marshals params and pushes a notification onto the queue without
// blocking. If the queue is full the notification is dropped and logged,
// never stalling the caller.
func send(ns chan<- models.Notification, method string, params any) {
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			log.Error().Err(err).Str("method", method).Msg("error marshalling notification params")
			return
		}
		raw = data
	}

	select {
	case ns <- models.Notification{Method: method, Params: raw}:
	default:
		log.Warn().Str("method", method).Msg("notification queue full, dropping notification")
	}
}

func PermissionUpdated(ns chan<- models.Notification, state string) {
	send(ns, models.NotificationPermissionUpdated, models.PermissionParams{State: state})
}

func ScanStarted(ns chan<- models.Notification) {
	send(ns, models.NotificationScanStarted, nil)
}

func ScanStopped(ns chan<- models.Notification) {
	send(ns, models.NotificationScanStopped, nil)
}

func ScanDecoded(ns chan<- models.Notification, payload models.ScanDecodedParams) {
	send(ns, models.NotificationScanDecoded, payload)
}

func ViewerLaunched(ns chan<- models.Notification, payload models.ViewerLaunchedParams) {
	send(ns, models.NotificationViewerLaunched, payload)
}

func ViewerFailed(ns chan<- models.Notification, payload models.ViewerFailedParams) {
	send(ns, models.NotificationViewerFailed, payload)
}

func ScannersAdded(ns chan<- models.Notification, payload models.ScannerResponse) {
	send(ns, models.NotificationScannersAdded, payload)
}

func ScannersRemoved(ns chan<- models.Notification, payload models.ScannerResponse) {
	send(ns, models.NotificationScannersRemoved, payload)
}

func SettingsReloaded(ns chan<- models.Notification) {
	send(ns, models.NotificationSettingsReloaded, nil)
}

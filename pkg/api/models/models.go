package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	NotificationPermissionUpdated = "permission.updated"
	NotificationScanStarted       = "scan.started"
	NotificationScanStopped       = "scan.stopped"
	NotificationScanDecoded       = "scan.decoded"
	NotificationViewerLaunched    = "viewer.launched"
	NotificationViewerFailed      = "viewer.failed"
	NotificationScannersAdded     = "scanners.added"
	NotificationScannersRemoved   = "scanners.removed"
	NotificationSettingsReloaded  = "settings.reloaded"
)

const (
	MethodPermissionRequest = "permission.request"
	MethodScanStart         = "scan.start"
	MethodScanStop          = "scan.stop"
	MethodStatus            = "status"
	MethodViewerLaunch      = "viewer.launch"
	MethodSettings          = "settings"
	MethodSettingsUpdate    = "settings.update"
	MethodSettingsReload    = "settings.reload"
	MethodVersion           = "version"
)

type Notification struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type RequestObject struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uuid.UUID      `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ResponseObject struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// ResponseErrorObject exists for sending errors, so we can omit result from
// the response, but so nil responses are still returned when using the main
// ResponseObject.
type ResponseErrorObject struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
	Error   *ErrorObject `json:"error"`
}

type PermissionParams struct {
	State string `json:"state"`
}

type ScanDecodedParams struct {
	ScanTime time.Time `json:"scanTime"`
	Payload  string    `json:"payload"`
	Source   string    `json:"source,omitempty"`
}

type ViewerLaunchedParams struct {
	Via string `json:"via"`
	URI string `json:"uri"`
}

type ViewerFailedParams struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type ScannerResponse struct {
	Driver    string `json:"driver"`
	Path      string `json:"path"`
	Connected bool   `json:"connected"`
}

type StatusResponse struct {
	Permission  string            `json:"permission"`
	LastPayload string            `json:"lastPayload,omitempty"`
	Scanners    []ScannerResponse `json:"scanners"`
	Scanning    bool              `json:"scanning"`
}

type LaunchParams struct {
	Payload *string `json:"payload,omitempty"`
}

type LaunchResponse struct {
	Launched bool   `json:"launched"`
	Via      string `json:"via,omitempty"`
	URI      string `json:"uri,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

type SettingsResponse struct {
	ViewerHost   string `json:"viewerHost"`
	ViewerMode   string `json:"viewerMode"`
	ViewerTitle  string `json:"viewerTitle"`
	APIPort      int    `json:"apiPort"`
	DebugLogging bool   `json:"debugLogging"`
}

type UpdateSettingsParams struct {
	DebugLogging *bool   `json:"debugLogging,omitempty"`
	ViewerMode   *string `json:"viewerMode,omitempty"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

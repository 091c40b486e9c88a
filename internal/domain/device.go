package domain

import "time"

// NotificationAuthorization mirrors the OS-level notification permission state
// reported by the mobile client. Reconciliation always maintains the pending
// reminder set; delivery consults this state per device.
type NotificationAuthorization string

const (
	AuthorizationAuthorized    NotificationAuthorization = "authorized"
	AuthorizationDenied        NotificationAuthorization = "denied"
	AuthorizationNotDetermined NotificationAuthorization = "not_determined"
)

type Device struct {
	DeviceID      string                    `json:"id" dynamodbav:"device_id"`
	UUID          string                    `json:"uuid" dynamodbav:"device_uuid"`
	UserID        string                    `json:"user_id" dynamodbav:"user_id"`
	Platform      string                    `json:"platform" dynamodbav:"platform"` // "ios" | "android"
	PushToken     *string                   `json:"-" dynamodbav:"push_token"`
	EndpointARN   string                    `json:"-" dynamodbav:"endpoint_arn"`
	Authorization NotificationAuthorization `json:"authorization" dynamodbav:"authorization"`
	AppVersion    string                    `json:"app_version" dynamodbav:"app_version"`
	Enable        bool                      `json:"enable" dynamodbav:"enable"`
	CreatedAt     time.Time                 `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time                 `json:"updated" dynamodbav:"updated_at"`
}

type RegisterDeviceRequest struct {
	UUID          string  `json:"uuid" validate:"required"`
	Platform      string  `json:"platform" validate:"required,oneof=ios android"`
	PushToken     *string `json:"push_token"`
	Authorization *string `json:"authorization" validate:"omitempty,oneof=authorized denied not_determined"`
	AppVersion    string  `json:"app_version"`
}

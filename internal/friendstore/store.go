package friendstore

import (
	"context"
)

// Friend is one tracked birthday. Year is nil when the user added the
// friend without an age.
type Friend struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Year  *int   `json:"year,omitempty"`
}

// Device is one registered app installation able to receive pushes.
// The token is the FCM routing address; NotificationEnabled mirrors the
// toggle on the settings screen.
type Device struct {
	ID                  string `json:"-"`
	Token               string `json:"token"`
	NotificationEnabled bool   `json:"notificationEnabled"`
	Timestamp           int64  `json:"timestamp,omitempty"`
}

// User owns its friends and devices. The digest never mutates any of them.
type User struct {
	ID      string
	Friends []Friend
	Devices []Device
}

// Store is the read side of the user database consumed by the weekly digest.
type Store interface {
	// FetchAllUsers returns a snapshot of every user with their friends and
	// registered devices, in a single read.
	FetchAllUsers(ctx context.Context) ([]User, error)
}

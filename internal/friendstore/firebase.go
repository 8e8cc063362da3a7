package friendstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/rs/zerolog/log"
)

// FirebaseStore reads users from the Firebase Realtime Database. The mobile
// and web clients write under /users/{uid}/friends and /users/{uid}/deviceTokens.
type FirebaseStore struct {
	client *db.Client
}

func NewFirebaseStore(ctx context.Context, firebaseApp *firebase.App) (*FirebaseStore, error) {
	client, err := firebaseApp.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create realtime database client: %w", err)
	}

	return &FirebaseStore{
		client: client,
	}, nil
}

// rawUser mirrors the database layout. Friend and device records are kept as
// raw JSON so one malformed record can be skipped without failing the whole
// snapshot decode.
type rawUser struct {
	Friends      map[string]json.RawMessage `json:"friends"`
	DeviceTokens map[string]json.RawMessage `json:"deviceTokens"`
}

// FetchAllUsers reads the full /users subtree in one call.
func (s *FirebaseStore) FetchAllUsers(ctx context.Context) ([]User, error) {
	var raw map[string]rawUser
	if err := s.client.NewRef("users").Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read users snapshot: %w", err)
	}

	return buildUsers(raw), nil
}

// buildUsers converts the raw snapshot into ordered User records. Push IDs
// sort lexicographically in creation order, so sorting keys reproduces the
// order friends were added in.
func buildUsers(raw map[string]rawUser) []User {
	users := make([]User, 0, len(raw))

	for _, userID := range sortedKeys(raw) {
		record := raw[userID]
		user := User{ID: userID}

		for _, friendID := range sortedKeys(record.Friends) {
			var friend Friend
			if err := json.Unmarshal(record.Friends[friendID], &friend); err != nil {
				log.Warn().Err(err).
					Str("user_id", userID).
					Str("friend_id", friendID).
					Msg("skipping malformed friend record")
				continue
			}
			friend.ID = friendID
			user.Friends = append(user.Friends, friend)
		}

		for _, deviceID := range sortedKeys(record.DeviceTokens) {
			var device Device
			if err := json.Unmarshal(record.DeviceTokens[deviceID], &device); err != nil {
				log.Warn().Err(err).
					Str("user_id", userID).
					Str("device_id", deviceID).
					Msg("skipping malformed device record")
				continue
			}
			device.ID = deviceID
			user.Devices = append(user.Devices, device)
		}

		users = append(users, user)
	}

	return users
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package push

import (
	"context"
)

// Gateway delivers a composed message to one device token. Delivery is
// best-effort; the caller decides what to do with a failure.
type Gateway interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

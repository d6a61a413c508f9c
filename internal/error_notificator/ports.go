package error_notificator

import "context"

type Notificator interface {
	// Notify reports an operational failure to the admins.
	Notify(ctx context.Context, source string, err error, details string) error
}

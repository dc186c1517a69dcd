package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
)

// WatchProfile subscribes to profile change notifications for one user and
// delivers full-profile snapshots. Each delivery is a complete re-read, not
// a patch; the consumer replaces its cached copy wholesale. The channel is
// closed when the context is cancelled.
func (s *Store) WatchProfile(ctx context.Context, user string) (<-chan models.UserProfile, error) {
	listener := pq.NewListener(s.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("Profile listener event", "event", ev, "error", err)
		}
	})
	if err := listener.Listen(profileChannel); err != nil {
		listener.Close()
		return nil, err
	}

	out := make(chan models.UserProfile, 1)

	go func() {
		defer close(out)
		defer listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// A nil notification signals a reconnect; re-read to be safe
				if n != nil && n.Extra != user {
					continue
				}
				profile, err := s.GetProfile(user)
				if err != nil {
					logger.Warn("Failed to read profile after change notification", "user", user, "error", err)
					continue
				}
				select {
				case out <- profile:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

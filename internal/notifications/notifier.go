// Package notifications publishes user-facing notification events to Redis.
// Delivery (push/email/in-app) is owned by a separate consumer; this package
// only guarantees best-effort publication.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"

	"majlis/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ModerationNotice tells a content owner that an admin changed or removed
// their reflection/benefit. The reason is always carried so the author is
// never left unaware of why.
type ModerationNotice struct {
	EventID       string    `json:"event_id"`
	ContentItemID uint      `json:"content_item_id"`
	ContentType   string    `json:"content_type"`
	Action        string    `json:"action"`
	Reason        string    `json:"reason"`
	CampID        uint      `json:"camp_id"`
	CohortNumber  int       `json:"cohort_number"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishModerationNotice publishes a moderation notice to the content
// owner's channel. The EventID and OccurredAt fields are filled in here.
func (n *Notifier) PublishModerationNotice(ctx context.Context, ownerID uint, notice ModerationNotice) error {
	if n.rdb == nil {
		return nil
	}
	notice.EventID = uuid.NewString()
	notice.OccurredAt = time.Now().UTC()

	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal moderation notice: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(ownerID), string(payload)).Err()
}

// NotifyOwnerAsync publishes a moderation notice without blocking the caller.
// Publication failures are logged and counted, never propagated: the
// moderation mutation and audit record already stand by the time this runs.
func (n *Notifier) NotifyOwnerAsync(ownerID uint, notice ModerationNotice) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic publishing moderation notice",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := n.PublishModerationNotice(ctx, ownerID, notice); err != nil {
			observability.NotificationFailures.Inc()
			slog.Error("failed to publish moderation notice",
				slog.Uint64("owner_id", uint64(ownerID)),
				slog.Uint64("content_item_id", uint64(notice.ContentItemID)),
				slog.String("action", notice.Action),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// StartUserSubscriber subscribes to pattern `notifications:user:*` and calls
// onMessage for each incoming message. Used by the delivery consumer and by
// tests; the API server itself only publishes.
func (n *Notifier) StartUserSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("panic in user subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}

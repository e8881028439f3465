package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"swingclub/server/internal/config"
)

// TypeInquiryNotify is the asynq task type for inquiry notifications.
const TypeInquiryNotify = "inquiry:notify"

// TaskPayload is the serialized form of a queued notification.
type TaskPayload struct {
	RecipientID string `json:"recipient_id"`
	Event       Event  `json:"event"`
}

// AsynqDispatcher enqueues notification tasks onto Redis for the background
// worker. Enqueueing happens strictly after the triggering write committed.
type AsynqDispatcher struct {
	client *asynq.Client
	cfg    *config.Config
}

// NewAsynqDispatcher creates a Dispatcher backed by an asynq client on the
// given Redis connection.
func NewAsynqDispatcher(rdb *redis.Client, cfg *config.Config) *AsynqDispatcher {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return &AsynqDispatcher{client: asynq.NewClient(clientOpt), cfg: cfg}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, recipientID primitive.ObjectID, ev Event) error {
	payload, err := json.Marshal(TaskPayload{
		RecipientID: recipientID.Hex(),
		Event:       ev,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	task := asynq.NewTask(TypeInquiryNotify, payload)
	_, err = d.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(d.cfg.NotifyMaxRetry),
		asynq.Timeout(d.cfg.NotifyTaskTimeout),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

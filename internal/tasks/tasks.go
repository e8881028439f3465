package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"swingclub/server/internal/config"
	"swingclub/server/internal/email"
	"swingclub/server/internal/notify"
	"swingclub/server/internal/services"
)

// TaskProcessor handles the processing of queued tasks. It holds the
// dependencies the task handlers need.
type TaskProcessor struct {
	cfg         *config.Config
	emailSender email.Sender
	users       services.IUserService
}

// NewTaskProcessor creates a TaskProcessor.
func NewTaskProcessor(cfg *config.Config, emailSender email.Sender, users services.IUserService) *TaskProcessor {
	return &TaskProcessor{
		cfg:         cfg,
		emailSender: emailSender,
		users:       users,
	}
}

// SetupServer configures and returns an Asynq server instance for the
// notification worker.
func SetupServer(rdb *redis.Client, cfg *config.Config) *asynq.Server {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	return asynq.NewServer(serverOpt, asynq.Config{
		Queues: map[string]int{
			"default": 5,
			"low":     1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Printf("Task %s failed: %v", task.Type(), err)
		}),
	})
}

// NewMux returns the handler mux for the notification worker.
func (p *TaskProcessor) NewMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(notify.TypeInquiryNotify, p.HandleInquiryNotifyTask)
	return mux
}

// HandleInquiryNotifyTask delivers one queued inquiry notification by email.
// Unknown recipients are dropped rather than retried; transient email errors
// are returned so asynq retries them.
func (p *TaskProcessor) HandleInquiryNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload notify.TaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %v: %w", err, asynq.SkipRetry)
	}

	recipientID, err := primitive.ObjectIDFromHex(payload.RecipientID)
	if err != nil {
		return fmt.Errorf("invalid recipient id %q: %v: %w", payload.RecipientID, err, asynq.SkipRetry)
	}

	recipient, err := p.users.FindByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("failed to load notification recipient %s: %w", payload.RecipientID, err)
	}
	if recipient == nil {
		log.Printf("Dropping notification for unknown user %s", payload.RecipientID)
		return nil
	}

	subject, body := renderNotification(p.cfg.AppName, payload.Event)
	if err := p.emailSender.Send(ctx, recipient.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send notification email to %s: %w", recipient.Email, err)
	}
	return nil
}

func renderNotification(appName string, ev notify.Event) (subject, body string) {
	switch ev.Kind {
	case notify.EventNewInquiry:
		subject = fmt.Sprintf("[%s] '%s' 상품에 새로운 문의가 도착했습니다", appName, ev.ItemTitle)
	case notify.EventNewMessage:
		subject = fmt.Sprintf("[%s] '%s' 문의에 새 메시지가 도착했습니다", appName, ev.ItemTitle)
	case notify.EventStatusChange:
		subject = fmt.Sprintf("[%s] '%s' 문의 상태가 변경되었습니다", appName, ev.ItemTitle)
	default:
		subject = fmt.Sprintf("[%s] 새로운 알림", appName)
	}

	body = subject
	if ev.Snippet != "" {
		body = fmt.Sprintf("%s\n\n%s", subject, ev.Snippet)
	}
	return subject, body
}

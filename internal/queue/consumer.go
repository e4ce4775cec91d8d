package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/repository"
)

// StartNotificationConsumer connects to the broker, declares the
// durable user.notification queue and consumes it forever,
// persisting each event into the notification history. When repo
// is nil (no MySQL configured) events are appended to
// logs/notifications.log instead. The function runs a reconnect
// loop with capped backoff and never returns under normal
// operation; failing messages are rejected without requeue so a
// poison message cannot wedge the stream.
func StartNotificationConsumer(repo *repository.NotificationRepo) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(BrokerURL())
		if err != nil {
			log.Printf("notification-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, repo); err != nil {
			log.Printf("notification-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, repo *repository.NotificationRepo) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("notification-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, repo); err != nil {
			log.Printf("notification-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, repo *repository.NotificationRepo) error {
	var ev UserNotificationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	at, err := time.Parse(time.RFC3339, ev.EmittedAt)
	if err != nil {
		at = time.Now().UTC()
	}

	if repo != nil {
		return repo.Insert(context.Background(), model.Notification{
			SubjectID: ev.SubjectID,
			Level:     ev.Level,
			Title:     ev.Title,
			Message:   ev.Message,
			Source:    ev.Source,
			CreatedAt: at,
		})
	}
	return appendLogLine(ev, at)
}

func appendLogLine(ev UserNotificationEvent, at time.Time) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "notifications.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s | subject=%s | source=%s | %s: %s\n",
		at.Format(time.RFC3339), ev.Level, ev.SubjectID, ev.Source, ev.Title, ev.Message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

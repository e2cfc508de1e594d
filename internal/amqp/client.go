// Package amqp bridges the conversation core to the messaging gateway
// over RabbitMQ: inbound user events are consumed from one queue,
// outbound replies published to another.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"kassabot/internal/transport"
)

// Circuit breaker states for the publish path.
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	maxFailures = 5
	openTimeout = 30 * time.Second
)

type Client struct {
	url          string
	exchangeName string
	inboundQueue string
	replyQueue   string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel

	failureCount int64
	state        int32
	lastFailure  time.Time
}

func NewClient(url, exchangeName, inboundQueue, replyQueue string) (*Client, error) {
	client := &Client{
		url:          url,
		exchangeName: exchangeName,
		inboundQueue: inboundQueue,
		replyQueue:   replyQueue,
	}

	if err := client.connect(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = channel
	c.mu.Unlock()

	if err := c.setup(); err != nil {
		c.Close()
		return fmt.Errorf("setup exchange and queues: %w", err)
	}
	return nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, queue := range []string{c.inboundQueue, c.replyQueue} {
		_, err = c.channel.QueueDeclare(
			queue, // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}

		// Routing key matches the queue name on a direct exchange.
		err = c.channel.QueueBind(queue, queue, c.exchangeName, false, nil)
		if err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}

	return nil
}

// publish sends one reply message, guarded by the circuit breaker.
func (c *Client) publish(ctx context.Context, msg *OutboundMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.isCircuitOpen() {
		return fmt.Errorf("circuit breaker is open, refusing to publish")
	}

	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()

	err = channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.replyQueue,   // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.EventID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("publish message: %w", err)
	}

	c.recordSuccess()
	return nil
}

// SendText implements transport.Sender.
func (c *Client) SendText(ctx context.Context, userID int64, text string, suggestions []string) error {
	return c.publish(ctx, NewTextMessage(userID, text, suggestions))
}

// SendImage implements transport.Sender.
func (c *Client) SendImage(ctx context.Context, userID int64, name string, image []byte) error {
	return c.publish(ctx, NewImageMessage(userID, name, image))
}

// ConsumeEvents delivers inbound user events to the handler with manual
// acks. A handler error nacks with requeue; a malformed payload is
// rejected without requeue. Connection loss triggers reconnects with
// exponential backoff until the context ends.
func (c *Client) ConsumeEvents(ctx context.Context, handler func(context.Context, transport.Event) error) error {
	attempt := 0
	for {
		err := c.consumeOnce(ctx, handler)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case isConnectionError(err):
			attempt++
			backoff := exponentialBackoff(attempt)
			slog.WarnContext(ctx, "AMQP connection lost, reconnecting",
				"attempt", attempt, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if err := c.connect(); err != nil {
				slog.ErrorContext(ctx, "AMQP reconnect failed", "attempt", attempt, "error", err)
				continue
			}
			attempt = 0
		default:
			return err
		}
	}
}

func (c *Client) consumeOnce(ctx context.Context, handler func(context.Context, transport.Event) error) error {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()

	msgs, err := channel.Consume(
		c.inboundQueue, // queue
		"",             // consumer
		false,          // auto-ack (we want manual ack)
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming user events", "queue", c.inboundQueue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			ev, err := InboundEventFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal event", "error", err)
				delivery.Nack(false, false) // reject and don't requeue
				continue
			}

			if err := handler(ctx, transport.Event{UserID: ev.UserID, Text: ev.Text}); err != nil {
				slog.ErrorContext(ctx, "Failed to handle event",
					"error", err,
					"event_id", ev.EventID,
					"user_id", ev.UserID)
				delivery.Nack(false, true) // reject and requeue
				continue
			}

			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) isCircuitOpen() bool {
	state := atomic.LoadInt32(&c.state)
	if state != StateOpen {
		return false
	}
	if time.Since(c.lastFailure) > openTimeout {
		atomic.StoreInt32(&c.state, StateHalfOpen)
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

func (c *Client) recordFailure() {
	c.lastFailure = time.Now()
	if atomic.AddInt64(&c.failureCount, 1) >= maxFailures {
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

// exponentialBackoff doubles per attempt starting at one second, capped at
// 30 seconds.
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	backoff := time.Second << uint(attempt)
	if backoff > 30*time.Second || backoff <= 0 {
		return 30 * time.Second
	}
	return backoff
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range []string{
		"connection refused",
		"connection closed",
		"unexpected EOF",
		"broken pipe",
		"use of closed network connection",
		"message channel closed",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"ad-rewards/internal/core/domain"
)

// Handler processes one reward command. A non-nil error requeues the
// message.
type Handler func(ctx context.Context, cmd domain.RewardCommand) error

// Consumer reads reward commands from the queue bound to the exchange.
type Consumer struct {
	topology Topology
	logger   *slog.Logger
	conn     *amqp.Connection
	ch       *amqp.Channel
}

// NewConsumer connects, declares the topology and limits unacknowledged
// deliveries to prefetch.
func NewConsumer(amqpURL string, topology Topology, prefetch int, logger *slog.Logger) (*Consumer, error) {
	conn, ch, err := dial(amqpURL)
	if err != nil {
		return nil, err
	}
	c := &Consumer{topology: topology, logger: logger, conn: conn, ch: ch}
	if err = c.declare(prefetch); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) declare(prefetch int) error {
	if err := declareExchange(c.ch, c.topology); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	q, err := c.ch.QueueDeclare(c.topology.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err = c.ch.QueueBind(q.Name, c.topology.RoutingKey, c.topology.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	if prefetch > 0 {
		if err = c.ch.Qos(prefetch, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}
	}
	return nil
}

// Run delivers messages to handle until ctx ends or the broker closes the
// channel.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.topology.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.settle(d, process(ctx, d.Body, handle, c.logger))
		}
	}
}

func (c *Consumer) settle(d amqp.Delivery, outcome outcome) {
	var err error
	switch outcome {
	case outcomeAck:
		err = d.Ack(false)
	case outcomeRequeue:
		err = d.Nack(false, true)
	case outcomeDiscard:
		err = d.Nack(false, false)
	}
	if err != nil {
		c.logger.Error("settle delivery", slog.Any("error", err))
	}
}

// Close closes the channel and connection.
func (c *Consumer) Close() {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRequeue
	outcomeDiscard
)

// process decodes body and runs handle. Malformed payloads are discarded
// since redelivery cannot fix them.
func process(ctx context.Context, body []byte, handle Handler, logger *slog.Logger) outcome {
	var cmd domain.RewardCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		logger.Error("malformed reward command", slog.Any("error", err))
		return outcomeDiscard
	}
	if cmd.UserID <= 0 || cmd.IdempotencyKey == "" {
		logger.Error("incomplete reward command", slog.Int64("user_id", cmd.UserID))
		return outcomeDiscard
	}
	if err := handle(ctx, cmd); err != nil {
		logger.Warn("reward command failed; requeueing",
			slog.String("idempotency_key", cmd.IdempotencyKey),
			slog.Any("error", err),
		)
		return outcomeRequeue
	}
	return outcomeAck
}

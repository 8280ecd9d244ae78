package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
)

// Producer implements port.RewardClient by publishing reward commands for
// rewardd to deliver. A published command counts as handed off.
type Producer struct {
	topology Topology

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ port.RewardClient = (*Producer)(nil)

// NewProducer connects to the broker and declares the exchange.
func NewProducer(amqpURL string, topology Topology) (*Producer, error) {
	conn, ch, err := dial(amqpURL)
	if err != nil {
		return nil, err
	}
	if err = declareExchange(ch, topology); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Producer{topology: topology, conn: conn, ch: ch}, nil
}

func (p *Producer) Reward(ctx context.Context, cmd domain.RewardCommand) error {
	msg, err := newPublishing(cmd, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.topology.Exchange, p.topology.RoutingKey, false, false, msg)
	if err == nil {
		return nil
	}
	if p.ch.IsClosed() && !p.conn.IsClosed() {
		// one reopen attempt; the dispatcher does not retry
		ch, chErr := p.conn.Channel()
		if chErr != nil {
			return fmt.Errorf("publish reward: %w", err)
		}
		p.ch = ch
		err = p.ch.PublishWithContext(ctx, p.topology.Exchange, p.topology.RoutingKey, false, false, msg)
	}
	if err != nil {
		return fmt.Errorf("publish reward: %w", err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

func newPublishing(cmd domain.RewardCommand, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal reward command: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    cmd.IdempotencyKey,
		Timestamp:    at,
		Body:         body,
	}, nil
}

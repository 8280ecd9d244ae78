// Package rabbitmq carries reward commands over an AMQP topic exchange.
package rabbitmq

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology names the exchange and queue reward commands travel through.
type Topology struct {
	Exchange   string
	RoutingKey string
	Queue      string
}

func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", fmt.Errorf("invalid AMQP scheme: %q", parsed.Scheme)
	}
	return clean, nil
}

func dial(rawURL string) (*amqp.Connection, *amqp.Channel, error) {
	cleanURL, err := sanitizeURL(rawURL)
	if err != nil {
		return nil, nil, err
	}
	// bounded dial so startup does not hang on an unreachable broker
	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return conn, ch, nil
}

func declareExchange(ch *amqp.Channel, t Topology) error {
	if t.Exchange == "" {
		return errors.New("exchange name is empty")
	}
	return ch.ExchangeDeclare(
		t.Exchange, // name
		"topic",    // type
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	)
}

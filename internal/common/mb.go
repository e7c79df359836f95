package common

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error)
}

const (
	UserExchange     Exchange   = "user_exchange"
	UserCreatedQueue Queue      = "user_created_queue"
	UserCreatedKey   BindingKey = "user.created"
)

// Binding ties a queue to an exchange under a routing key.
type Binding struct {
	Queue Queue
	Key   BindingKey
}

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	return &MessageBroker{conn: conn, ch: ch}, nil
}

// Close closes the channel first, then the connection.
func (mb *MessageBroker) Close() error {
	if err := mb.ch.Close(); err != nil {
		return err
	}

	return mb.conn.Close()
}

// DeclareExchange declares a durable direct exchange and binds every queue in bindings to it.
func (mb *MessageBroker) DeclareExchange(exchange Exchange, bindings ...Binding) error {
	err := mb.ch.ExchangeDeclare(string(exchange), "direct", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("could not declare exchange %s: %w", exchange, err)
	}

	for _, b := range bindings {
		if _, err := mb.ch.QueueDeclare(string(b.Queue), true, false, false, false, nil); err != nil {
			return fmt.Errorf("could not declare queue %s: %w", b.Queue, err)
		}

		if err := mb.ch.QueueBind(string(b.Queue), string(b.Key), string(exchange), false, nil); err != nil {
			return fmt.Errorf("could not bind queue %s: %w", b.Queue, err)
		}
	}

	return nil
}

// SetupUserExchange declares the exchange used for account lifecycle events.
func SetupUserExchange(mb *MessageBroker) error {
	return mb.DeclareExchange(UserExchange, Binding{Queue: UserCreatedQueue, Key: UserCreatedKey})
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

// PublishJSON marshals v and publishes it through p.
func PublishJSON(ctx context.Context, p MessageProducer, v any, key BindingKey, exchange Exchange) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode message: %w", err)
	}

	return p.Publish(ctx, body, key, exchange)
}

func (mb *MessageBroker) Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), string(key), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}

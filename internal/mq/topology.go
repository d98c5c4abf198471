package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeEvents Exchange = "simplify.events"
	ExchangeDLQ    Exchange = "simplify.dlq"
)

// Queues — имена очередей.
const (
	QueueEventsAudit Queue = "events.audit"
	QueueDLQEvents   Queue = "dlq.events"
)

// Routing keys.
const (
	RoutingKeyFlowRecommended RoutingKey = "flow.recommended"
	RoutingKeyProgressSaved   RoutingKey = "progress.saved"
	RoutingKeyProgressDeleted RoutingKey = "progress.deleted"
	RoutingKeyDLQEvents       RoutingKey = "events"
)

type binding struct {
	queue    Queue
	pattern  string
	exchange Exchange
}

// bindings — привязки очередей. Журнал получает все события flow.* и progress.*.
var bindings = []binding{
	{QueueEventsAudit, "flow.*", ExchangeEvents},
	{QueueEventsAudit, "progress.*", ExchangeEvents},
	{QueueDLQEvents, string(RoutingKeyDLQEvents), ExchangeDLQ},
}

// SetupTopology объявляет exchanges, очереди и привязки. Операция идемпотентна.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		if err := declareExchanges(ch); err != nil {
			return err
		}
		if err := declareQueues(ch); err != nil {
			return err
		}
		return bindQueues(ch)
	})
}

func declareExchanges(ch *amqp.Channel) error {
	exchanges := []struct {
		name Exchange
		kind string
	}{
		{ExchangeEvents, amqp.ExchangeTopic},
		{ExchangeDLQ, amqp.ExchangeDirect},
	}

	for _, ex := range exchanges {
		err := ch.ExchangeDeclare(
			string(ex.name), // name
			ex.kind,         // type
			true,            // durable
			false,           // auto-deleted
			false,           // internal
			false,           // no-wait
			nil,             // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex.name, err)
		}
	}
	return nil
}

func declareQueues(ch *amqp.Channel) error {
	queues := []struct {
		name Queue
		args amqp.Table
	}{
		// events.audit — события, которые не удалось записать, уходят в DLQ
		{QueueEventsAudit, amqp.Table{
			"x-dead-letter-exchange":    string(ExchangeDLQ),
			"x-dead-letter-routing-key": string(RoutingKeyDLQEvents),
		}},
		{QueueDLQEvents, nil},
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			string(q.name), // name
			true,           // durable
			false,          // delete when unused
			false,          // exclusive
			false,          // no-wait
			q.args,         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", q.name, err)
		}
	}
	return nil
}

func bindQueues(ch *amqp.Channel) error {
	for _, b := range bindings {
		err := ch.QueueBind(
			string(b.queue),    // queue name
			b.pattern,          // routing key
			string(b.exchange), // exchange
			false,              // no-wait
			nil,                // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
		}
	}
	return nil
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  Simplify RabbitMQ Topology:

    simplify.events (topic)
    └── events.audit [flow.*, progress.*]
            Consumer: simplify-worker
            DLQ: dlq.events

    simplify.dlq (direct)
    └── dlq.events [routing: events]
            Manual processing
`
}

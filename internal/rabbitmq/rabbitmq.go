package rabbitmq

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection wraps amqp.Connection and redials it when the broker drops it.
type Connection struct {
	conn *amqp.Connection
	url  string
	log  logging.Logger
	lock sync.RWMutex
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	connection := &Connection{conn: conn, url: url, log: log}
	go connection.watch(conn)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) watch(conn *amqp.Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))

		for {
			time.Sleep(reconnectDelay)
			next, err := amqp.Dial(c.url)
			if err == nil {
				c.lock.Lock()
				c.conn = next
				c.lock.Unlock()
				conn = next
				c.log.Info(ctx, "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is recreated while the connection is alive.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}
	channel := &Channel{ch: ch, log: c.log}
	go channel.watch(c, ch)
	return channel, nil
}

// Channel wraps amqp.Channel. Close marks it as closed on purpose, which
// stops reconnecting and consuming.
type Channel struct {
	ch     *amqp.Channel
	closed int32
	log    logging.Logger
	lock   sync.RWMutex
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) watch(c *Connection, current *amqp.Channel) {
	ctx := context.Background()
	for {
		reason, ok := <-current.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			ch.Close()
			return
		}
		ch.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))

		for {
			time.Sleep(reconnectDelay)
			next, err := c.current().Channel()
			if err == nil {
				ch.lock.Lock()
				ch.ch = next
				ch.lock.Unlock()
				current = next
				ch.log.Info(ctx, "RabbitMQ channel recreated.")
				break
			}
			ch.log.Error(ctx, "RabbitMQ channel recreate failed.", logging.Entry("err", err))
		}
	}
}

func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareQueue declares a durable queue bound to the default exchange.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (ch *Channel) Publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	return ch.current().PublishWithContext(ctx, exchange, routingKey, false, false, msg)
}

// Consume keeps delivering messages across channel recreation until the
// channel is closed with Close.
func (ch *Channel) Consume(queue, consumer string) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)
	go func() {
		defer close(deliveries)
		ctx := context.Background()
		for !ch.IsClosed() {
			d, err := ch.current().Consume(queue, consumer, false, false, false, false, nil)
			if err != nil {
				ch.log.Error(ctx, "Consume failed.", logging.Entry("queue", queue), logging.Entry("err", err))
				time.Sleep(reconnectDelay)
				continue
			}
			for msg := range d {
				deliveries <- msg
			}
			// The closed flag may be set slightly after the delivery channel ends.
			time.Sleep(reconnectDelay)
		}
		ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()
	return deliveries, nil
}

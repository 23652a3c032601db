package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/rabbitmq/amqp091-go"

	"finreports/internal/log"
)

// Client wraps one AMQP connection with the exchange and queue topology of
// the report pipeline: a direct exchange, a durable request queue the worker
// consumes, and a durable results queue it publishes to.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	requestQueue string
	resultsQueue string
	logger       *log.Logger
}

func NewClient(url, exchangeName, requestQueue, resultsQueue string, logger *log.Logger) (*Client, error) {
	var conn *amqp091.Connection
	err := retry.Do(
		func() error {
			var err error
			conn, err = amqp091.Dial(url)
			return err
		},
		retry.Attempts(5),
		retry.Delay(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		requestQueue: requestQueue,
		resultsQueue: resultsQueue,
		logger:       logger,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	return client, nil
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

	for _, queue := range []string{c.requestQueue, c.resultsQueue} {
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

// PublishRequest publishes a report generation request.
func (c *Client) PublishRequest(ctx context.Context, req *ReportRequest) error {
	body, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if err := c.publish(ctx, c.requestQueue, body); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "published report request",
		log.FieldJobID, req.ID,
		log.FieldReportType, req.Type)
	return nil
}

// PublishResult publishes a generated report document.
func (c *Client) PublishResult(ctx context.Context, res *ReportResult) error {
	body, err := res.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.publish(ctx, c.resultsQueue, body); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "published report result",
		log.FieldJobID, res.ID,
		log.FieldReportType, res.Type)
	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// ConsumeRequests delivers report requests to handler until ctx is
// cancelled. Handler errors nack without requeue; malformed payloads are
// rejected the same way.
func (c *Client) ConsumeRequests(ctx context.Context, handler func(*ReportRequest) error) error {
	msgs, err := c.channel.Consume(
		c.requestQueue, // queue
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

	c.logger.InfoContext(ctx, "started consuming report requests", "queue", c.requestQueue)

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "stopping message consumption", log.FieldError, ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			req, err := ReportRequestFromJSON(delivery.Body)
			if err != nil {
				c.logger.ErrorContext(ctx, "failed to unmarshal request", log.FieldError, err)
				delivery.Nack(false, false)
				continue
			}

			if err := handler(req); err != nil {
				c.logger.ErrorContext(ctx, "request handler failed",
					log.FieldJobID, req.ID,
					log.FieldError, err)
				delivery.Nack(false, false)
				continue
			}
			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prize_pool/pkg/logger"

	"github.com/nats-io/nats.go"
)

const (
	PoolInitialized     = "pool.initialized"
	TicketPurchased     = "ticket.purchased"
	SpinResult          = "spin.result"
	FundsWithdrawn      = "funds.withdrawn"
	ProbabilityAnalysis = "probability.analysis"
	ItemAvailability    = "item.availability"
)

type Event struct {
	Type      string `json:"type"`
	PoolID    int64  `json:"pool_id"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Emitter публикует доменные события. Ошибка публикации не откатывает операцию
type Emitter interface {
	Emit(ctx context.Context, event Event) error
	Close()
}

// Publisher подмножество *nats.Conn, которое нужно эмиттеру
type Publisher interface {
	Publish(subject string, data []byte) error
}

type natsEmitter struct {
	pub           Publisher
	conn          *nats.Conn
	subjectPrefix string
}

// Connect подключается к NATS с бесконечным переподключением
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("prize_pool"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("disconnected from NATS", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}

// NewNATSEmitter эмиттер поверх соединения NATS
func NewNATSEmitter(conn *nats.Conn, subjectPrefix string) Emitter {
	return &natsEmitter{pub: conn, conn: conn, subjectPrefix: subjectPrefix}
}

// NewPublisherEmitter эмиттер поверх произвольного Publisher
func NewPublisherEmitter(pub Publisher, subjectPrefix string) Emitter {
	return &natsEmitter{pub: pub, subjectPrefix: subjectPrefix}
}

// Subject <prefix>.<type>
func Subject(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

func (e *natsEmitter) Emit(_ context.Context, event Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.pub.Publish(Subject(e.subjectPrefix, event.Type), data)
}

func (e *natsEmitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

type noopEmitter struct{}

// NewNoopEmitter эмиттер, который только пишет событие в debug лог
func NewNoopEmitter() Emitter {
	return noopEmitter{}
}

func (noopEmitter) Emit(_ context.Context, event Event) error {
	logger.Debug("event", "type", event.Type, "pool_id", event.PoolID)
	return nil
}

func (noopEmitter) Close() {}

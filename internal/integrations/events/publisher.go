package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	// defaultQueueSize событий, ожидающих отправки
	defaultQueueSize = 256

	// batchTimeout сколько writer ждет добора пачки перед отправкой
	batchTimeout = 10 * time.Millisecond
)

// messageWriter часть *kafka.Writer, которая нужна публикатору
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирований в Kafka.
// Publish только ставит событие в очередь, отправкой занимается фоновая горутина.
// Ключ сообщения ID бронирования, поэтому события одного бронирования идут в одну партицию.
type Publisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  Logger

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

// NewPublisher создает публикатор. brokers через запятую: "kafka-1:9092,kafka-2:9092"
func NewPublisher(brokers string, topic string, timeout time.Duration, logger Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(SplitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
	}
	return newPublisher(writer, topic, timeout, defaultQueueSize, logger)
}

func newPublisher(writer messageWriter, topic string, timeout time.Duration, queueSize int, logger Logger) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &Publisher{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan kafka.Message, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish ставит событие в очередь на отправку и не ждет брокер.
// Ошибка означает, что событие не принято: не сериализовалось, очередь заполнена или публикатор закрыт.
func (p *Publisher) Publish(_ context.Context, event *BookingEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w: %s for booking id=%d", ErrQueueFull, event.Type, event.BookingID)
	}
}

func (p *Publisher) run() {
	defer close(p.done)

	for msg := range p.queue {
		p.deliver(msg)
	}
}

// deliver единственное место, где логируются ошибки доставки
func (p *Publisher) deliver(msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	eventType := headerValue(msg, "event_type")
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Publish: failed to deliver %s for booking id=%s: %v", eventType, msg.Key, err)
		return
	}

	p.logger.Info("Publish: %s for booking id=%s sent to %s", eventType, msg.Key, p.topic)
}

// Close дожидается отправки событий из очереди и закрывает соединения с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// NoopPublisher используется, когда события выключены
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

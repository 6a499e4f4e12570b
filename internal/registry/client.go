package registry

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/fire_alert_system/internal/models"
)

// ErrClientClosed - отправка в уже закрытое соединение
var ErrClientClosed = errors.New("client connection closed")

// Transport - канал отправки клиенту; *websocket.Conn удовлетворяет этому интерфейсу
type Transport interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client - живое соединение клиента и его последнее местоположение.
// Местоположение защищено собственной блокировкой, запись в транспорт сериализована.
type Client struct {
	ID      string
	Session uuid.UUID

	transport    Transport
	writeTimeout time.Duration

	mu       sync.RWMutex
	location models.Location

	sendMu sync.Mutex
	closed atomic.Bool

	evalMu sync.Mutex
}

// NewClient создает клиента с новой сессией
func NewClient(id string, transport Transport, location models.Location, writeTimeout time.Duration) *Client {
	return &Client{
		ID:           id,
		Session:      uuid.New(),
		transport:    transport,
		writeTimeout: writeTimeout,
		location:     location,
	}
}

// Location возвращает копию текущего местоположения
func (c *Client) Location() models.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.location
}

// SetLocation атомарно заменяет местоположение
func (c *Client) SetLocation(loc models.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.location = loc
}

// Send отправляет JSON-сообщение с ограничением времени записи
func (c *Client) Send(v any) error {
	if c.closed.Load() {
		return ErrClientClosed
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed.Load() {
		return ErrClientClosed
	}
	if c.writeTimeout > 0 {
		if err := c.transport.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
	}
	if err := c.transport.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write to client %s: %w", c.ID, err)
	}
	return nil
}

// Exclusive выполняет fn, не допуская параллельной оценки этого же клиента
// из цикла обхода и из обработчика сообщений
func (c *Client) Exclusive(fn func()) {
	c.evalMu.Lock()
	defer c.evalMu.Unlock()
	fn()
}

// Close закрывает транспорт; повторные вызовы ничего не делают
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.transport.Close()
}

// Closed сообщает, закрыт ли клиент
func (c *Client) Closed() bool {
	return c.closed.Load()
}

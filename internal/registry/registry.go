// Package registry хранит живые вебсокет-соединения клиентов и их местоположения.
// Его используют и цикл приема сообщений клиента, и периодическая проверка пожаров.
package registry

import (
	"errors"
	"sync"

	"github.com/shenikar/fire_alert_system/internal/models"
)

var (
	// ErrDuplicateID - клиент с таким идентификатором уже подключен
	ErrDuplicateID = errors.New("client id already registered")
	// ErrNotFound - клиент не подключен
	ErrNotFound = errors.New("client not found")
)

// Registry - потокобезопасный реестр соединений
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// New создает пустой реестр
func New() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Add регистрирует клиента, если его идентификатор свободен
func (r *Registry) Add(c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[c.ID]; exists {
		return ErrDuplicateID
	}
	r.clients[c.ID] = c
	return nil
}

// Replace регистрирует клиента, вытесняя предыдущее соединение с тем же идентификатором.
// Возвращает вытесненного клиента или nil.
func (r *Registry) Replace(c *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.clients[c.ID]
	r.clients[c.ID] = c
	return old
}

// UpdateLocation меняет местоположение зарегистрированного клиента
func (r *Registry) UpdateLocation(id string, loc models.Location) error {
	c, err := r.Get(id)
	if err != nil {
		return err
	}
	c.SetLocation(loc)
	return nil
}

// Get возвращает клиента по идентификатору
func (r *Registry) Get(id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Remove удаляет клиента по идентификатору
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// RemoveClient удаляет запись, только если она принадлежит той же сессии.
// Так завершение старого соединения не удаляет клиента, переподключившегося с тем же ID.
func (r *Registry) RemoveClient(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[c.ID]
	if !ok || current.Session != c.Session {
		return false
	}
	delete(r.clients, c.ID)
	return true
}

// ForEach обходит снимок реестра. fn вызывается без удержания блокировки,
// поэтому может удалять клиентов.
func (r *Registry) ForEach(fn func(c *Client)) {
	for _, c := range r.Snapshot() {
		fn(c)
	}
}

// Snapshot возвращает текущий список клиентов
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	return clients
}

// Len возвращает количество подключенных клиентов
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

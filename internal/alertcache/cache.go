// Package alertcache хранит для каждого клиента идентификаторы уже доставленных пожаров,
// чтобы один и тот же пожар не отправлялся повторно.
package alertcache

import (
	"sync"
	"time"
)

// Cache - потокобезопасный кэш доставленных оповещений: клиент -> пожар -> updated_datetime.
//
// При realertOnUpdate=false пожар, однажды отмеченный для клиента, больше не доставляется,
// даже если его атрибуты изменились. При realertOnUpdate=true более новая отметка
// времени обновления считается новым оповещением.
type Cache struct {
	mu              sync.RWMutex
	seen            map[string]map[string]time.Time
	realertOnUpdate bool
}

// New создает пустой кэш
func New(realertOnUpdate bool) *Cache {
	return &Cache{
		seen:            make(map[string]map[string]time.Time),
		realertOnUpdate: realertOnUpdate,
	}
}

// Seen сообщает, был ли пожар уже доставлен клиенту
func (c *Cache) Seen(clientID, hazardID string, updated time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hazards, ok := c.seen[clientID]
	if !ok {
		return false
	}
	deliveredAt, ok := hazards[hazardID]
	if !ok {
		return false
	}
	if c.realertOnUpdate && updated.After(deliveredAt) {
		return false
	}
	return true
}

// MarkSeen отмечает пожар как доставленный клиенту
func (c *Cache) MarkSeen(clientID, hazardID string, updated time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hazards, ok := c.seen[clientID]
	if !ok {
		hazards = make(map[string]time.Time)
		c.seen[clientID] = hazards
	}
	if prev, ok := hazards[hazardID]; ok && prev.After(updated) {
		return
	}
	hazards[hazardID] = updated
}

// Clear удаляет запись клиента, вызывается при отключении или переподключении
func (c *Cache) Clear(clientID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seen, clientID)
}

// Len возвращает количество пожаров, доставленных клиенту
func (c *Cache) Len(clientID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seen[clientID])
}

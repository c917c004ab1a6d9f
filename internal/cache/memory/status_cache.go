package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/Gunvolt24/jersey_checkout/pkg/metrics"
)

var _ ports.PaymentStatusCache = (*StatusCache)(nil)

type entry struct {
	id        string
	status    *domain.PaymentStatus
	expiresAt time.Time
}

// StatusCache: LRU-кэш статусов платёжных намерений с TTL.
// Что класть в кэш, решает вызывающий (финальные статусы).
type StatusCache struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu  sync.Mutex
	now func() time.Time
}

func NewStatusCache(capacity int, ttl time.Duration) *StatusCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &StatusCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

func (c *StatusCache) Get(_ context.Context, id string) (*domain.PaymentStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneStatus(ent.status), true
}

func (c *StatusCache) Set(_ context.Context, st *domain.PaymentStatus) error {
	if st == nil || st.ID == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.index[st.ID]; ok {
		ent := elem.Value.(*entry)
		ent.status = cloneStatus(st)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        st.ID,
		status:    cloneStatus(st),
		expiresAt: c.expiryFrom(now),
	})
	c.index[st.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Len: текущее число записей.
func (c *StatusCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

func (c *StatusCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

func (c *StatusCache) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.id)
	c.ll.Remove(elem)
}

func (c *StatusCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *StatusCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

func (c *StatusCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		if !c.isExpired(back.Value.(*entry), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

// cloneStatus: копия со своей картой metadata.
func cloneStatus(st *domain.PaymentStatus) *domain.PaymentStatus {
	if st == nil {
		return nil
	}
	cp := *st
	if st.Metadata != nil {
		cp.Metadata = make(map[string]string, len(st.Metadata))
		for k, v := range st.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

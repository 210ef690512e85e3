package locking

import (
	"errors"
	"sync"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"gamify/internal/interfaces"
)

// LockerRedis hands out distributed mutexes backed by redsync.
type LockerRedis struct {
	rs *redsync.Redsync
}

func NewLockerRedis(client redis.UniversalClient) *LockerRedis {
	pool := goredis.NewPool(client)
	return &LockerRedis{rs: redsync.New(pool)}
}

func (l *LockerRedis) NewMutex(name string) interfaces.Mutex {
	return l.rs.NewMutex(name)
}

var ErrLockHeld = errors.New("lock already held")

// LockerMemory is the in-process equivalent used without redis and in tests.
type LockerMemory struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockerMemory() *LockerMemory {
	return &LockerMemory{locks: map[string]*sync.Mutex{}}
}

func (l *LockerMemory) NewMutex(name string) interfaces.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return &mutexMemory{m: m}
}

type mutexMemory struct {
	m *sync.Mutex
}

func (m *mutexMemory) TryLock() error {
	if !m.m.TryLock() {
		return ErrLockHeld
	}
	return nil
}

func (m *mutexMemory) Unlock() (bool, error) {
	m.m.Unlock()
	return true, nil
}

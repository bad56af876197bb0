package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	converter "github.com/malusev998/currency-converter"
)

type (
	entry struct {
		conversion converter.ConversionWithID
		expiresAt  time.Time
	}

	// MemoryStorage keeps conversions for the lifetime of the process so a
	// result can be shown after the request that produced it.
	MemoryStorage struct {
		mutex   sync.RWMutex
		entries map[uuid.UUID]entry
		ttl     time.Duration
		now     func() time.Time
	}
)

func NewMemoryStorage(config MemoryConfig) *MemoryStorage {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &MemoryStorage{
		entries: make(map[uuid.UUID]entry),
		ttl:     ttl,
		now:     now,
	}
}

func (m *MemoryStorage) Store(conversion converter.Conversion) (converter.ConversionWithID, error) {
	id, err := uuid.NewRandom()

	if err != nil {
		return converter.ConversionWithID{}, err
	}

	if conversion.CreatedAt.IsZero() {
		conversion.CreatedAt = m.now()
	}

	stored := converter.ConversionWithID{Conversion: conversion, ID: id}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.evictExpired()
	m.entries[id] = entry{conversion: stored, expiresAt: m.now().Add(m.ttl)}

	return stored, nil
}

func (m *MemoryStorage) Get(id uuid.UUID) (converter.ConversionWithID, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	e, ok := m.entries[id]

	if !ok || !m.now().Before(e.expiresAt) {
		return converter.ConversionWithID{}, ErrConversionNotFound
	}

	return e.conversion, nil
}

func (m *MemoryStorage) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.entries)
}

// caller holds the write lock
func (m *MemoryStorage) evictExpired() {
	now := m.now()

	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

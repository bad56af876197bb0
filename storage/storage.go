package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	converter "github.com/malusev998/currency-converter"
)

type (
	Provider   string
	BaseConfig struct {
		TTL time.Duration
	}
	MemoryConfig struct {
		BaseConfig
		Now func() time.Time
	}
)

const (
	Memory Provider = "memory"

	DefaultTTL = 30 * time.Minute
)

var (
	ErrStorageNotFound    = errors.New("storage is not found")
	ErrConversionNotFound = errors.New("conversion is not found")
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "memory", "":
		return Memory, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func NewStorage(provider Provider, config interface{}) (converter.SessionStorage, error) {
	switch provider {
	case Memory:
		c, _ := config.(MemoryConfig)
		return NewMemoryStorage(c), nil
	}

	return nil, ErrStorageNotFound
}

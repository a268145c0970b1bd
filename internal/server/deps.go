package server

import (
	"context"
	"time"

	"github.com/beetlebugorg/gars/pkg/gars"
)

// TileCache stores rendered tile responses. *cache.Cache implements it.
type TileCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Grids *gars.Grids

	// Cache is optional; tiles are generated on every request without it.
	Cache    TileCache
	CacheTTL time.Duration

	MaxLabels      int
	TileSize       int
	RequestTimeout time.Duration
}

func (d *Dependencies) maxLabels() int {
	if d.MaxLabels <= 0 {
		return 10000
	}
	return d.MaxLabels
}

func (d *Dependencies) tileSize() int {
	if d.TileSize <= 0 {
		return 256
	}
	return d.TileSize
}

func (d *Dependencies) requestTimeout() time.Duration {
	if d.RequestTimeout <= 0 {
		return 5 * time.Second
	}
	return d.RequestTimeout
}

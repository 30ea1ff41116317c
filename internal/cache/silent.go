package cache

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/sitelens/sitelens/internal/logging"
)

// Silent wraps a Store so the cache can never fail a request: reads
// degrade to misses and writes are fire-and-forget, with failures
// logged at warn level. Values are gzip-compressed transparently;
// uncompressed legacy values still read back.
type Silent struct {
	store  Store
	logger *logging.Logger
}

// NewSilent wraps store. A nil store yields an always-miss cache, for
// deployments that disable caching.
func NewSilent(store Store, logger *logging.Logger) *Silent {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Silent{store: store, logger: logger}
}

// Get returns the cached value and whether it was found. Backend and
// decompression failures count as misses.
func (s *Silent) Get(ctx context.Context, key string) (string, bool) {
	if s.store == nil {
		return "", false
	}

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}

	value, err := decompress(raw)
	if err != nil {
		s.logger.Warn("cache value corrupt", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Put stores a value, compressed. Failures are logged and dropped.
func (s *Silent) Put(ctx context.Context, key, value string, ttl time.Duration) {
	if s.store == nil {
		return
	}

	compressed, err := compress(value)
	if err != nil {
		s.logger.Warn("cache compress failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Put(ctx, key, compressed, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// DeleteByPrefix removes all keys under prefix, returning how many
// went away; failures yield zero.
func (s *Silent) DeleteByPrefix(ctx context.Context, prefix string) int {
	if s.store == nil {
		return 0
	}

	count, err := s.store.DeleteByPrefix(ctx, prefix)
	if err != nil {
		s.logger.Warn("cache purge failed", zap.String("prefix", prefix), zap.Error(err))
	}
	return count
}

func compress(value string) (string, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(value)); err != nil {
		return "", err
	}
	if err := gw.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decompress(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		return raw, nil
	}
	gr, err := gzip.NewReader(bytes.NewReader([]byte(raw)))
	if err != nil {
		return "", err
	}
	defer gr.Close()

	out, err := io.ReadAll(gr)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

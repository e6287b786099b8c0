package cli

import (
	"fmt"
	"strings"

	"github.com/aretw0/kopye/internal/adapters/file"
	"github.com/aretw0/kopye/internal/adapters/redis"
	"github.com/aretw0/kopye/internal/config"
	"github.com/aretw0/kopye/pkg/persistence/middleware"
	"github.com/aretw0/kopye/pkg/ports"
)

func nopClose() error { return nil }

// isRedisURL reports whether store names a redis server instead of a directory.
func isRedisURL(store string) bool {
	return strings.HasPrefix(store, "redis://") || strings.HasPrefix(store, "rediss://")
}

// OpenAnswerStore builds the store described by cfg. Redaction runs before encryption,
// so redacted answers never reach the cipher. A nil store means persistence is disabled.
// The returned close function releases network connections.
func OpenAnswerStore(cfg config.AnswersConfig) (ports.AnswerStore, func() error, error) {
	if cfg.Store == "" || cfg.Store == config.StoreNone {
		return nil, nopClose, nil
	}

	var (
		store  ports.AnswerStore
		closer = nopClose
	)
	if isRedisURL(cfg.Store) {
		rs, err := redis.NewFromURL(cfg.Store, redis.WithTTL(cfg.TTL))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid answer store %q: %w", cfg.Store, err)
		}
		store, closer = rs, rs.Close
	} else {
		store = file.New(cfg.Store)
	}

	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewRedactionMiddleware(cfg.Redact)
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		mws = append(mws, mw)
	}
	if cfg.Key != "" {
		key, err := middleware.ParseKey(cfg.Key)
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		enc := middleware.EncryptionConfig{ActiveKey: key}
		for _, raw := range cfg.FallbackKeys {
			fallback, err := middleware.ParseKey(raw)
			if err != nil {
				_ = closer()
				return nil, nil, err
			}
			enc.FallbackKeys = append(enc.FallbackKeys, fallback)
		}
		mw, err := middleware.NewEncryptionMiddleware(enc)
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		mws = append(mws, mw)
	}

	return middleware.Chain(store, mws...), closer, nil
}

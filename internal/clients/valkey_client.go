package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
	TTL      time.Duration
}

// ValkeyClient is a translation cache shared between server instances.
// valkey-go reconnects on its own, so Client is never replaced after init.
type ValkeyClient struct {
	Client valkey.Client
	cfg    ValkeyConfig
}

func newValkeyClient(cfg ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.Address,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	return client, nil
}

func InitValkey(cfg ValkeyConfig) (*ValkeyClient, error) {
	client, err := newValkeyClient(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", cfg.Address))
	return &ValkeyClient{Client: client, cfg: cfg}, nil
}

func (vc *ValkeyClient) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}

// Get implements translation.Cache. Misses and errors both report false.
// Commands are pinned because DoWithRetry may send them more than once.
func (vc *ValkeyClient) Get(ctx context.Context, key string) (string, bool) {
	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(key).Build().Pin(), 3)
	value, err := res.ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Get failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return "", false
	}
	return value, true
}

// Set implements translation.Cache. Entries expire after the configured TTL.
func (vc *ValkeyClient) Set(ctx context.Context, key, value string) {
	cmd := vc.Client.B().Set().Key(key).Value(value).ExSeconds(ttlSeconds(vc.cfg.TTL)).Build().Pin()

	if err := vc.DoWithRetry(ctx, cmd, 3).Error(); err != nil {
		slog.Warn("[ValkeyClient] Failed to store translation",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// ttlSeconds rounds up to whole seconds, never below one.
func ttlSeconds(ttl time.Duration) int64 {
	secs := int64((ttl + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// DoWithRetry retries connection errors only. Commands must be pinned.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil || valkey.IsValkeyNil(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))
		if !isConnectionError(result.Error()) {
			break
		}

		select {
		case <-ctx.Done():
			return result
		case <-time.After(250 * time.Millisecond):
		}
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}

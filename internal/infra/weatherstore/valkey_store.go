package weatherstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/luwei/smart-travel/internal/domain/weather"
)

// ValkeyStore caches observations in a Valkey-compatible database so a fleet
// of instances shares one provider quota.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetObservation(ctx context.Context, key string) (weather.Observation, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return weather.Observation{}, false, nil
		}
		return weather.Observation{}, false, err
	}
	var obs weather.Observation
	if err := json.Unmarshal([]byte(payload), &obs); err != nil {
		return weather.Observation{}, false, err
	}
	return obs, true, nil
}

func (s *ValkeyStore) SaveObservation(ctx context.Context, key string, obs weather.Observation, ttl time.Duration) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":" + key
}

var _ weather.Store = (*ValkeyStore)(nil)

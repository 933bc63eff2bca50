package quotastore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agristack/internal/domain/quota"
)

const keyTTL = 48 * time.Hour

// admitLua returns {admitted, count}. Counters live under one key per day, so the day
// reset is implicit: a new day starts from a missing key.
const admitLua = `
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local ceiling = tonumber(ARGV[1])
if current >= ceiling then
  return {0, current}
end
current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('EXPIRE', KEYS[1], ARGV[2])
end
return {1, current}
`

var admitScript = valkey.NewLuaScript(admitLua)

// ValkeyStore shares the daily counter between replicas through a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "quota"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Admit(ctx context.Context, day string, ceiling int) (quota.Decision, error) {
	args := []string{strconv.Itoa(ceiling), strconv.Itoa(int(keyTTL / time.Second))}
	arr, err := admitScript.Exec(ctx, s.client, []string{s.dayKey(day)}, args).ToArray()
	if err != nil {
		return quota.Decision{}, err
	}
	if len(arr) != 2 {
		return quota.Decision{}, errors.New("unexpected quota script reply")
	}
	admitted, err := arr[0].AsInt64()
	if err != nil {
		return quota.Decision{}, err
	}
	count, err := arr[1].AsInt64()
	if err != nil {
		return quota.Decision{}, err
	}
	return quota.Decision{Admitted: admitted == 1, Count: int(count)}, nil
}

func (s *ValkeyStore) dayKey(day string) string {
	return fmt.Sprintf("%s:daily:%s", s.prefix, day)
}

var _ quota.Store = (*ValkeyStore)(nil)

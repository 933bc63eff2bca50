package quotastore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/yanqian/agristack/internal/domain/quota"
)

func admitCommand(key, ceiling string) gomock.Matcher {
	sum := sha1.Sum([]byte(admitLua))
	return mock.Match("EVALSHA", hex.EncodeToString(sum[:]), "1", key, ceiling, "172800")
}

func TestValkeyStoreAdmit(t *testing.T) {
	tests := []struct {
		name  string
		reply valkey.ValkeyMessage
		want  quota.Decision
	}{
		{
			name:  "admitted below ceiling",
			reply: mock.ValkeyArray(mock.ValkeyInt64(1), mock.ValkeyInt64(3)),
			want:  quota.Decision{Admitted: true, Count: 3},
		},
		{
			name:  "refused at ceiling",
			reply: mock.ValkeyArray(mock.ValkeyInt64(0), mock.ValkeyInt64(5)),
			want:  quota.Decision{Admitted: false, Count: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock.NewClient(ctrl)
			client.EXPECT().
				Do(gomock.Any(), admitCommand("agristack:quota:daily:2026-04-01", "5")).
				Return(mock.Result(tt.reply))

			store := NewValkeyStore(client, "agristack:quota")
			decision, err := store.Admit(context.Background(), "2026-04-01", 5)
			require.NoError(t, err)
			require.Equal(t, tt.want, decision)
		})
	}
}

func TestValkeyStoreDefaultPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	client.EXPECT().
		Do(gomock.Any(), admitCommand("quota:daily:2026-04-02", "1")).
		Return(mock.Result(mock.ValkeyArray(mock.ValkeyInt64(1), mock.ValkeyInt64(1))))

	decision, err := NewValkeyStore(client, "").Admit(context.Background(), "2026-04-02", 1)
	require.NoError(t, err)
	require.True(t, decision.Admitted)
}

func TestValkeyStoreMalformedReply(t *testing.T) {
	tests := []struct {
		name   string
		result valkey.ValkeyResult
	}{
		{name: "short array", result: mock.Result(mock.ValkeyArray(mock.ValkeyInt64(1)))},
		{name: "not an array", result: mock.Result(mock.ValkeyString("OK"))},
		{name: "non integer count", result: mock.Result(mock.ValkeyArray(mock.ValkeyInt64(1), mock.ValkeyString("many")))},
		{name: "transport error", result: mock.ErrorResult(errors.New("connection reset"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock.NewClient(ctrl)
			client.EXPECT().
				Do(gomock.Any(), admitCommand("quota:daily:2026-04-01", "5")).
				Return(tt.result)

			_, err := NewValkeyStore(client, "").Admit(context.Background(), "2026-04-01", 5)
			require.Error(t, err)
		})
	}
}

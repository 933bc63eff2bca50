package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayKeyUsesLocation(t *testing.T) {
	ts := time.Date(2026, 4, 1, 23, 30, 0, 0, time.UTC)
	warsaw := time.FixedZone("CEST", 2*60*60)

	require.Equal(t, "2026-04-01", DayKey(ts, time.UTC))
	require.Equal(t, "2026-04-02", DayKey(ts, warsaw))
}

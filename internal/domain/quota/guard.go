package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/agristack/pkg/errors"
	"github.com/yanqian/agristack/pkg/util"
)

// Guard admits requests until the daily ceiling is reached.
type Guard interface {
	Admit(ctx context.Context) error
}

type guard struct {
	cfg    Config
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewGuard wires the quota guard on top of the given store.
func NewGuard(cfg Config, store Store, logger *slog.Logger) Guard {
	return &guard{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "quota.guard"),
		now:    time.Now,
	}
}

func (g *guard) Admit(ctx context.Context) error {
	day := util.DayKey(g.now(), g.cfg.Location)
	decision, err := g.store.Admit(ctx, day, g.cfg.DailyLimit)
	if err != nil {
		return apperrors.Wrap("quota_store_error", "failed to check daily quota", err)
	}
	if !decision.Admitted {
		g.logger.Warn("daily quota exhausted", "day", day, "count", decision.Count, "ceiling", g.cfg.DailyLimit)
		return apperrors.Wrap(CodeExceeded, fmt.Sprintf("daily request limit (%d) exceeded, try again tomorrow", g.cfg.DailyLimit), nil)
	}
	g.logger.Debug("request admitted", "day", day, "count", decision.Count, "ceiling", g.cfg.DailyLimit)
	return nil
}

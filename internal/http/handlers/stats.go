package handlers

import (
	"context"
	"encoding/json"

	"github.com/clickfit/clickfit/internal/cache"
	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/gin-gonic/gin"
)

const statsCacheKey = "stats:users"

type StatsProvider interface {
	Stats(ctx context.Context) (user.Stats, error)
}

// StatsHandler serves the aggregate counts. The result is cached for a
// short TTL since the three aggregate queries scan the whole table.
type StatsHandler struct {
	svc   StatsProvider
	cache cache.Store
}

func NewStatsHandler(svc StatsProvider, c cache.Store) *StatsHandler {
	return &StatsHandler{svc: svc, cache: c}
}

func (h *StatsHandler) GetStats(ctx *gin.Context) {
	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	if h.cache != nil {
		if raw, ok := h.cache.Get(cctx, statsCacheKey); ok {
			var s user.Stats

			if json.Unmarshal(raw, &s) == nil {
				RespondData(ctx, s)
				return
			}
		}
	}

	s, err := h.svc.Stats(cctx)

	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch statistics")
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			h.cache.Set(cctx, statsCacheKey, raw)
		}
	}

	RespondData(ctx, s)
}

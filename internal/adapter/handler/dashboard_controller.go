package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/comment-analytics/errors"
	dto "github.com/johnquangdev/comment-analytics/internal/adapter/dto/dashboard"
	"github.com/johnquangdev/comment-analytics/internal/adapter/presenter"
	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/pkg/config"
)

// SummaryBuilder builds dashboard summaries
type SummaryBuilder interface {
	ChannelsForOwner(ctx context.Context, ownerID string) ([]string, error)
	BuildSummary(ctx context.Context, channelIDs []string, periodDays, trendCount int) (*entities.DashboardSummary, error)
}

// DashboardController serves the home page summary
type DashboardController struct {
	builder  SummaryBuilder
	defaults config.DashboardConfig
	logger   *zap.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(builder SummaryBuilder, defaults config.DashboardConfig, logger *zap.Logger) *DashboardController {
	return &DashboardController{builder: builder, defaults: defaults, logger: logger}
}

// Summary returns sentiment aggregates over recent analysed videos
// @Summary      Dashboard summary
// @Description  Aggregates stored analyses of videos published in the last period_days across the selected channels. Returns {"detail": ...} when there is nothing to aggregate.
// @Tags         Dashboard
// @Produce      json
// @Param        channel_ids  query     string  false  "Comma separated channel IDs"
// @Param        owner_id     query     string  false  "Use every channel of this owner"
// @Param        period_days  query     int     false  "Window in days, clamped to >= 1"
// @Param        trend_count  query     int     false  "Trend points per series, clamped to >= 1"
// @Success      200  {object}  dashboard.SummaryResponse
// @Failure      400  {object}  map[string]interface{}  "Missing or invalid channel selection"
// @Router       /dashboard [get]
func (dc *DashboardController) Summary(c echo.Context) error {
	var req dto.SummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(dc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(dc.logger, c, errors.ErrInvalidArgument("Invalid dashboard query"))
	}

	periodDays, err := clampPositive(req.PeriodDays, dc.defaults.DefaultPeriodDays)
	if err != nil {
		return HandleError(dc.logger, c, errors.ErrInvalidArgument("period_days must be an integer"))
	}
	trendCount, err := clampPositive(req.TrendCount, dc.defaults.DefaultTrendCount)
	if err != nil {
		return HandleError(dc.logger, c, errors.ErrInvalidArgument("trend_count must be an integer"))
	}

	filter := dto.ChannelFilter{ChannelIDs: splitList(req.ChannelIDs)}
	if err := c.Validate(&filter); err != nil {
		return HandleError(dc.logger, c, errors.ErrInvalidArgument("Invalid channel_ids"))
	}

	ctx := c.Request().Context()
	channelIDs := filter.ChannelIDs
	switch {
	case len(channelIDs) > 0:
	case req.OwnerID != "":
		ids, err := dc.builder.ChannelsForOwner(ctx, req.OwnerID)
		if err != nil {
			return HandleError(dc.logger, c, errors.ErrDBQueryFailed("channels by owner", err))
		}
		channelIDs = ids
	default:
		return HandleError(dc.logger, c, errors.ErrInvalidArgument("channel_ids or owner_id is required"))
	}

	summary, err := dc.builder.BuildSummary(ctx, channelIDs, periodDays, trendCount)
	if err != nil {
		return HandleError(dc.logger, c, errors.ErrDBQueryFailed("dashboard summary", err))
	}
	return HandleSuccess(dc.logger, c, presenter.ToSummaryResponse(summary))
}

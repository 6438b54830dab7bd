package dashboard

// SummaryRequest holds the dashboard query parameters.
// ChannelIDs takes precedence over OwnerID.
type SummaryRequest struct {
	ChannelIDs string `query:"channel_ids"`
	OwnerID    string `query:"owner_id" validate:"omitempty,resource_id"`
	PeriodDays string `query:"period_days"`
	TrendCount string `query:"trend_count"`
}

// ChannelFilter is the parsed channel list
type ChannelFilter struct {
	ChannelIDs []string `validate:"dive,resource_id"`
}

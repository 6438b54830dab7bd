package dashboard

import "github.com/johnquangdev/comment-analytics/internal/domain/entities"

// SummaryResponse is either {"detail": ...} or the flattened dashboard payload
type SummaryResponse struct {
	Detail string `json:"detail,omitempty"`
	*entities.DashboardData
}

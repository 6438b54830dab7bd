package analysis

// VideoParam identifies a video in the request path
type VideoParam struct {
	VideoID string `param:"id" validate:"required,resource_id"`
}

// JobParam identifies a job in the request path
type JobParam struct {
	JobID string `param:"id" validate:"required,uuid"`
}

package entities

import "errors"

// Domain errors
var (
	ErrVideoNotFound   = errors.New("video not found")
	ErrNoCorpus        = errors.New("no comments fetched for video")
	ErrAnalysisMissing = errors.New("no analysis stored for video")
	ErrJobNotFound     = errors.New("analysis job not found")
	ErrLockHeld        = errors.New("analysis already running for video")
)

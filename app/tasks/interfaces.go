package tasks

import (
	"context"

	"github.com/AlphaNewsNetwork/alphanews/app/pipeline"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background source polling and story
// submission tasks.
// Example usage:
//
//	scheduler := NewScheduler(sourceCache, submissionRepo, storyPipeline)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// StoryRunner runs the full rewrite and publish pipeline for a single
// source article.
type StoryRunner interface {
	Run(ctx context.Context, sourceURL string, styleName string) (pipeline.Result, error)
}

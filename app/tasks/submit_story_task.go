package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// SubmitStoryTask runs the rewrite and publish pipeline for a single
// article URL discovered by a source poll. The pipeline records every
// attempt in the submission log, so failed submissions are not retried.
type SubmitStoryTask struct {
	Task
	URL           string
	Style         string
	storyPipeline StoryRunner
}

func NewSubmitStoryTask(sourceName string, url string, style string, storyPipeline StoryRunner) *SubmitStoryTask {
	task := NewTask(TaskTypeSubmitStory, sourceName)
	task.MaxRetries = 0

	return &SubmitStoryTask{
		Task:          task,
		URL:           url,
		Style:         style,
		storyPipeline: storyPipeline,
	}
}

func (t *SubmitStoryTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.storyPipeline.Run(ctx, t.URL, t.Style)
	if err != nil {
		return fmt.Errorf("failed to submit story: %w", err)
	}

	slog.Info("Task completed",
		"type", "SubmitStory",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"url", t.URL,
		"entry_id", result.EntryID)

	return nil
}

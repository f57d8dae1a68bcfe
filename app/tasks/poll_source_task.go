package tasks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/AlphaNewsNetwork/alphanews/app/database"
	"github.com/AlphaNewsNetwork/alphanews/app/sources"
)

// PollSourceTask fetches a source feed and enqueues a SubmitStoryTask for
// every new item that has not already been submitted successfully.
type PollSourceTask struct {
	Task
	SourceConfig   *sources.Config
	enqueuer       TaskSchedulerInterface
	storyPipeline  StoryRunner
	submissionRepo database.SubmissionRepository
	httpClient     *http.Client
	parser         *gofeed.Parser
	userAgent      string
}

func NewPollSourceTask(sourceConfig *sources.Config, enqueuer TaskSchedulerInterface,
	storyPipeline StoryRunner, submissionRepo database.SubmissionRepository,
	httpClient *http.Client, userAgent string) *PollSourceTask {
	return &PollSourceTask{
		Task:           NewTask(TaskTypePollSource, sourceConfig.Name),
		SourceConfig:   sourceConfig,
		enqueuer:       enqueuer,
		storyPipeline:  storyPipeline,
		submissionRepo: submissionRepo,
		httpClient:     httpClient,
		parser:         gofeed.NewParser(),
		userAgent:      userAgent,
	}
}

func (t *PollSourceTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	data, err := t.fetchFeed(ctx, t.SourceConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch source feed: %w", err)
	}

	parsed, err := t.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse source feed: %w", err)
	}

	seenCount := 0
	enqueuedCount := 0

	for i, item := range parsed.Items {
		if i >= t.SourceConfig.Settings.MaxItems {
			break
		}
		if item.Link == "" {
			continue
		}

		submitted, err := t.submissionRepo.HasSucceeded(item.Link)
		if err != nil {
			return fmt.Errorf("failed to check submission log: %w", err)
		}
		if submitted {
			seenCount++
			continue
		}

		submitTask := NewSubmitStoryTask(t.SourceName, item.Link, t.SourceConfig.Style, t.storyPipeline)
		if err := t.enqueuer.EnqueueTask(submitTask); err != nil {
			slog.Warn("Failed to enqueue SubmitStoryTask", "source", t.SourceName, "url", item.Link, "error", err)
			continue
		}
		enqueuedCount++
	}

	slog.Info("Task completed",
		"type", "PollSource",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"total", len(parsed.Items),
		"seen", seenCount,
		"enqueued", enqueuedCount)

	return nil
}

func (t *PollSourceTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

package api

import (
	"context"

	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
	"github.com/AlphaNewsNetwork/alphanews/app/database"
	"github.com/AlphaNewsNetwork/alphanews/app/feedreader"
	"github.com/AlphaNewsNetwork/alphanews/app/pipeline"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
)

type StoryPipelineInterface interface {
	Run(ctx context.Context, sourceURL string, styleName string) (pipeline.Result, error)
	RunScript(ctx context.Context, payload pipeline.ScriptPayload) (string, error)
}

var _ StoryPipelineInterface = (*pipeline.Pipeline)(nil)

type FeedReaderInterface interface {
	ListStories(ctx context.Context) ([]contentstore.Entry, error)
	ListVideos(ctx context.Context) ([]contentstore.Entry, error)
	GetStoryBySlug(ctx context.Context, slug string) (*contentstore.Entry, error)
}

var _ FeedReaderInterface = (*feedreader.Reader)(nil)

type Handler struct {
	storyPipeline  StoryPipelineInterface
	reader         FeedReaderInterface
	submissionRepo database.SubmissionRepository
	styleCache     *styles.ConfigCache
}

type SubmitStoryRequest struct {
	URL   string `json:"url"`
	Style string `json:"style"`
}

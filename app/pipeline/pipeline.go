package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
	"github.com/AlphaNewsNetwork/alphanews/app/database"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
)

// Stage interfaces let the orchestrator be exercised without any provider
// in the loop.

type FetcherInterface interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type ExtractorInterface interface {
	Run(rawHTML []byte) (string, error)
	RunReadability(rawHTML []byte) (string, error)
}

type RewriterInterface interface {
	Run(ctx context.Context, text string, style *styles.Config) (RewrittenStory, error)
}

type IllustratorInterface interface {
	Run(ctx context.Context, body string, style *styles.Config) (ImageAsset, error)
}

type ScriptWriterInterface interface {
	Run(ctx context.Context, title, excerpt string) (string, error)
}

type PublisherInterface interface {
	CreateStory(ctx context.Context, story RewrittenStory, image *ImageAsset) (string, error)
	UpdateEntryField(ctx context.Context, loc contentstore.EntryLocator, fieldName, locale, value string) error
}

var _ FetcherInterface = (*Fetcher)(nil)
var _ ExtractorInterface = (*Extractor)(nil)
var _ RewriterInterface = (*Rewriter)(nil)
var _ IllustratorInterface = (*Illustrator)(nil)
var _ ScriptWriterInterface = (*ScriptWriter)(nil)
var _ PublisherInterface = (*Publisher)(nil)

// ScriptField is the entry field the video script workflow sets.
const ScriptField = "videoscript"

// Pipeline chains the stages sequentially and aborts the whole run on the
// first failure. There is no partial success: an entry is either fully
// created (or updated and republished) or untouched, though a failure
// after a model call wastes that call with no compensation.
type Pipeline struct {
	fetcher      FetcherInterface
	extractor    ExtractorInterface
	rewriter     RewriterInterface
	illustrator  IllustratorInterface
	scriptWriter ScriptWriterInterface
	publisher    PublisherInterface
	styleCache   *styles.ConfigCache
	submissions  database.SubmissionRepository
}

func New(fetcher FetcherInterface, extractor ExtractorInterface, rewriter RewriterInterface,
	illustrator IllustratorInterface, scriptWriter ScriptWriterInterface,
	publisher PublisherInterface, styleCache *styles.ConfigCache,
	submissions database.SubmissionRepository) *Pipeline {
	return &Pipeline{
		fetcher:      fetcher,
		extractor:    extractor,
		rewriter:     rewriter,
		illustrator:  illustrator,
		scriptWriter: scriptWriter,
		publisher:    publisher,
		styleCache:   styleCache,
		submissions:  submissions,
	}
}

// Run executes the full ingestion workflow for one source URL:
// fetch -> extract -> rewrite -> illustrate -> create-and-publish.
func (p *Pipeline) Run(ctx context.Context, sourceURL, styleName string) (Result, error) {
	if styleName == "" {
		styleName = styles.DefaultName
	}
	style, err := p.styleCache.GetConfig(styleName)
	if err != nil {
		return Result{}, validationErrorf("unknown style '%s'", styleName)
	}

	submissionID, err := p.submissions.Insert(sourceURL, styleName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to record submission: %w", err)
	}

	result, err := p.run(ctx, sourceURL, style)
	if err != nil {
		slog.Error("Pipeline run failed", "submission_id", submissionID, "url", sourceURL, "error", err)
		if logErr := p.submissions.Fail(submissionID, err); logErr != nil {
			slog.Error("Failed to record submission failure", "submission_id", submissionID, "error", logErr)
		}
		return Result{}, err
	}

	if err := p.submissions.Complete(submissionID, result.EntryID, result.ImageURL); err != nil {
		slog.Error("Failed to record submission completion", "submission_id", submissionID, "error", err)
	}

	slog.Info("Pipeline run completed", "submission_id", submissionID, "url", sourceURL,
		"entry_id", result.EntryID, "slug", result.Story.Slug)

	return result, nil
}

func (p *Pipeline) run(ctx context.Context, sourceURL string, style *styles.Config) (Result, error) {
	rawHTML, err := p.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return Result{}, fmt.Errorf("fetch stage: %w", err)
	}

	extract := p.extractor.Run
	if style.Extraction.UseReadability {
		extract = p.extractor.RunReadability
	}
	text, err := extract(rawHTML)
	if err != nil {
		return Result{}, fmt.Errorf("extract stage: %w", err)
	}

	// An empty extraction is passed through unchanged; the model is
	// called on empty input rather than short-circuiting.
	story, err := p.rewriter.Run(ctx, text, style)
	if err != nil {
		return Result{}, fmt.Errorf("rewrite stage: %w", err)
	}

	image, err := p.illustrator.Run(ctx, story.Body, style)
	if err != nil {
		return Result{}, fmt.Errorf("illustrate stage: %w", err)
	}

	entryID, err := p.publisher.CreateStory(ctx, story, &image)
	if err != nil {
		return Result{}, fmt.Errorf("publish stage: %w", err)
	}

	return Result{EntryID: entryID, ImageURL: image.URL, Story: story}, nil
}

// RunScript executes the video script workflow: validate the webhook
// payload, generate a script from title and excerpt, and when the payload
// carries a complete entry locator, write the script to the entry's
// videoscript field and republish it.
func (p *Pipeline) RunScript(ctx context.Context, payload ScriptPayload) (string, error) {
	title := payload.Fields.Title[contentstore.DefaultLocale]
	excerpt := payload.Fields.Excerpt[contentstore.DefaultLocale]
	if excerpt == "" {
		excerpt = payload.Fields.Summary[contentstore.DefaultLocale]
	}

	if title == "" || excerpt == "" {
		return "", validationErrorf("missing title or excerpt fields")
	}

	script, err := p.scriptWriter.Run(ctx, title, excerpt)
	if err != nil {
		return "", fmt.Errorf("script stage: %w", err)
	}

	loc := contentstore.EntryLocator{
		SpaceID:       payload.Sys.Space.Sys.ID,
		EnvironmentID: payload.Sys.Environment.Sys.ID,
		EntryID:       payload.Sys.ID,
	}
	if !loc.Valid() {
		slog.Debug("Script payload has no entry locator, skipping store update")
		return script, nil
	}

	if err := p.publisher.UpdateEntryField(ctx, loc, ScriptField, contentstore.DefaultLocale, script); err != nil {
		return "", fmt.Errorf("publish stage: %w", err)
	}

	slog.Info("Video script generated", "entry", loc.String(), "script_length", len(script))

	return script, nil
}

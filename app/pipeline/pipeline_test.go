package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
	"github.com/AlphaNewsNetwork/alphanews/app/database"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
)

// Stage fakes for orchestration tests.

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeExtractor struct {
	text             string
	err              error
	readabilityCalls int
}

func (f *fakeExtractor) Run(rawHTML []byte) (string, error) {
	return f.text, f.err
}

func (f *fakeExtractor) RunReadability(rawHTML []byte) (string, error) {
	f.readabilityCalls++
	return f.text, f.err
}

type fakeRewriter struct {
	story RewrittenStory
	err   error
	calls int
}

func (f *fakeRewriter) Run(ctx context.Context, text string, style *styles.Config) (RewrittenStory, error) {
	f.calls++
	return f.story, f.err
}

type fakeIllustrator struct {
	asset ImageAsset
	err   error
	calls int
}

func (f *fakeIllustrator) Run(ctx context.Context, body string, style *styles.Config) (ImageAsset, error) {
	f.calls++
	return f.asset, f.err
}

type fakeScriptWriter struct {
	script string
	err    error
}

func (f *fakeScriptWriter) Run(ctx context.Context, title, excerpt string) (string, error) {
	return f.script, f.err
}

type fakePipelinePublisher struct {
	entryID     string
	createErr   error
	updateErr   error
	createCalls int
	updatedLoc  contentstore.EntryLocator
	updatedVal  string
	updateCalls int
}

func (f *fakePipelinePublisher) CreateStory(ctx context.Context, story RewrittenStory, image *ImageAsset) (string, error) {
	f.createCalls++
	return f.entryID, f.createErr
}

func (f *fakePipelinePublisher) UpdateEntryField(ctx context.Context, loc contentstore.EntryLocator, fieldName, locale, value string) error {
	f.updateCalls++
	f.updatedLoc = loc
	f.updatedVal = value
	return f.updateErr
}

// fakeSubmissions implements database.SubmissionRepository in memory.
type fakeSubmissions struct {
	inserted  int
	completed int
	failed    int
	lastError string
}

func (f *fakeSubmissions) Insert(sourceURL, style string) (string, error) {
	f.inserted++
	return "sub1", nil
}

func (f *fakeSubmissions) Complete(id, entryID, imageURL string) error {
	f.completed++
	return nil
}

func (f *fakeSubmissions) Fail(id string, failure error) error {
	f.failed++
	if failure != nil {
		f.lastError = failure.Error()
	}
	return nil
}

func (f *fakeSubmissions) GetByID(id string) (*database.Submission, error) { return nil, nil }
func (f *fakeSubmissions) GetLatestBySourceURL(sourceURL string) (*database.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissions) HasSucceeded(sourceURL string) (bool, error) { return false, nil }
func (f *fakeSubmissions) Count() (int, error)                         { return 0, nil }
func (f *fakeSubmissions) CountByStatus(status string) (int, error)    { return 0, nil }
func (f *fakeSubmissions) GetRecent(limit int) ([]database.Submission, error) {
	return nil, nil
}

type pipelineFixture struct {
	fetcher     *fakeFetcher
	extractor   *fakeExtractor
	rewriter    *fakeRewriter
	illustrator *fakeIllustrator
	scripts     *fakeScriptWriter
	publisher   *fakePipelinePublisher
	submissions *fakeSubmissions
	pipeline    *Pipeline
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		fetcher:   &fakeFetcher{data: []byte("<html></html>")},
		extractor: &fakeExtractor{text: "extracted text"},
		rewriter: &fakeRewriter{story: RewrittenStory{
			Body:    "Headline\nBody",
			Title:   "Headline",
			Slug:    "story-1722512345678",
			Excerpt: "Headline Body...",
		}},
		illustrator: &fakeIllustrator{asset: ImageAsset{Prompt: "p", URL: "https://img.example.com/1"}},
		scripts:     &fakeScriptWriter{script: "the script"},
		publisher:   &fakePipelinePublisher{entryID: "entry1"},
		submissions: &fakeSubmissions{},
	}
	f.pipeline = New(f.fetcher, f.extractor, f.rewriter, f.illustrator, f.scripts,
		f.publisher, styles.NewConfigCache("/nonexistent"), f.submissions)
	return f
}

func TestPipelineRun_Success(t *testing.T) {
	f := newPipelineFixture()

	result, err := f.pipeline.Run(context.Background(), "https://example.com/article", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.EntryID != "entry1" {
		t.Errorf("Expected entry id 'entry1', got %q", result.EntryID)
	}
	if result.ImageURL != "https://img.example.com/1" {
		t.Errorf("Expected image URL from illustrator, got %q", result.ImageURL)
	}
	if f.submissions.completed != 1 || f.submissions.failed != 0 {
		t.Errorf("Expected one completed submission, got %d/%d", f.submissions.completed, f.submissions.failed)
	}
}

func TestPipelineRun_UnknownStyle(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.pipeline.Run(context.Background(), "https://example.com/article", "no-such-style")

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if f.fetcher.calls != 0 {
		t.Error("Expected no fetch for unknown style")
	}
	if f.submissions.inserted != 0 {
		t.Error("Expected no submission record for unknown style")
	}
}

func TestPipelineRun_FetchFailureShortCircuits(t *testing.T) {
	f := newPipelineFixture()
	f.fetcher.err = errors.New("connection refused")

	_, err := f.pipeline.Run(context.Background(), "https://example.com/article", "")
	if err == nil {
		t.Fatal("Expected error from fetch failure")
	}
	if !strings.Contains(err.Error(), "fetch stage") {
		t.Errorf("Expected fetch stage in error, got: %v", err)
	}

	if f.rewriter.calls != 0 {
		t.Error("Expected no rewrite after fetch failure")
	}
	if f.publisher.createCalls != 0 {
		t.Error("Expected no store write after fetch failure")
	}
	if f.submissions.failed != 1 {
		t.Error("Expected the submission to be marked failed")
	}
}

func TestPipelineRun_RewriteFailureSkipsStoreWrite(t *testing.T) {
	f := newPipelineFixture()
	f.rewriter.err = errors.New("provider error 500")

	_, err := f.pipeline.Run(context.Background(), "https://example.com/article", "")
	if err == nil {
		t.Fatal("Expected error from rewrite failure")
	}

	if f.illustrator.calls != 0 {
		t.Error("Expected no illustration after rewrite failure")
	}
	if f.publisher.createCalls != 0 {
		t.Error("Expected no store write after rewrite failure")
	}
	if !strings.Contains(f.submissions.lastError, "provider error 500") {
		t.Errorf("Expected provider failure recorded, got %q", f.submissions.lastError)
	}
}

func TestPipelineRun_IllustrateFailureSkipsStoreWrite(t *testing.T) {
	f := newPipelineFixture()
	f.illustrator.err = errors.New("image generation failed")

	if _, err := f.pipeline.Run(context.Background(), "https://example.com/article", ""); err == nil {
		t.Fatal("Expected error from illustrate failure")
	}
	if f.publisher.createCalls != 0 {
		t.Error("Expected no store write after illustrate failure")
	}
}

func TestPipelineRun_EmptyExtractionStillRewrites(t *testing.T) {
	f := newPipelineFixture()
	f.extractor.text = ""

	if _, err := f.pipeline.Run(context.Background(), "https://example.com/article", ""); err != nil {
		t.Fatalf("Expected empty extraction to pass through, got: %v", err)
	}
	if f.rewriter.calls != 1 {
		t.Error("Expected rewrite to be called on empty input")
	}
}

func TestPipelineRunScript_UpdatesEntry(t *testing.T) {
	f := newPipelineFixture()

	var payload ScriptPayload
	payload.Fields.Title = map[string]string{"en-US": "Rocket Day"}
	payload.Fields.Excerpt = map[string]string{"en-US": "A rocket launched."}
	payload.Sys.ID = "entry9"
	payload.Sys.Space.Sys.ID = "space1"
	payload.Sys.Environment.Sys.ID = "master"

	script, err := f.pipeline.RunScript(context.Background(), payload)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if script != "the script" {
		t.Errorf("Expected script from writer, got %q", script)
	}

	if f.publisher.updateCalls != 1 {
		t.Fatal("Expected entry update")
	}
	if f.publisher.updatedLoc.EntryID != "entry9" {
		t.Errorf("Expected locator from payload, got %q", f.publisher.updatedLoc.EntryID)
	}
	if f.publisher.updatedVal != "the script" {
		t.Errorf("Expected script written to entry, got %q", f.publisher.updatedVal)
	}
}

func TestPipelineRunScript_SummaryFallback(t *testing.T) {
	f := newPipelineFixture()

	var payload ScriptPayload
	payload.Fields.Title = map[string]string{"en-US": "Rocket Day"}
	payload.Fields.Summary = map[string]string{"en-US": "A rocket launched."}

	if _, err := f.pipeline.RunScript(context.Background(), payload); err != nil {
		t.Fatalf("Expected summary to satisfy excerpt requirement, got: %v", err)
	}
}

func TestPipelineRunScript_MissingFields(t *testing.T) {
	f := newPipelineFixture()

	var payload ScriptPayload
	payload.Fields.Title = map[string]string{"en-US": "Only a title"}

	_, err := f.pipeline.RunScript(context.Background(), payload)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if f.publisher.updateCalls != 0 {
		t.Error("Expected no store update for invalid payload")
	}
}

func TestPipelineRunScript_NoLocatorSkipsUpdate(t *testing.T) {
	f := newPipelineFixture()

	var payload ScriptPayload
	payload.Fields.Title = map[string]string{"en-US": "Rocket Day"}
	payload.Fields.Excerpt = map[string]string{"en-US": "A rocket launched."}

	script, err := f.pipeline.RunScript(context.Background(), payload)
	if err != nil {
		t.Fatalf("Expected no error without locator, got: %v", err)
	}
	if script == "" {
		t.Error("Expected script to be returned")
	}
	if f.publisher.updateCalls != 0 {
		t.Error("Expected no store update without a locator")
	}
}

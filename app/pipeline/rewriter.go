package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/AlphaNewsNetwork/alphanews/app/openai"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
)

// Completer is the slice of the language-model client the transform
// stages need.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts openai.ChatOptions) (string, error)
}

var _ Completer = (*openai.Client)(nil)

// Rewriter rewrites extracted article text into a target style with one
// chat completion, then derives title, slug, and excerpt from the body.
type Rewriter struct {
	completer Completer
}

func NewRewriter(completer Completer) *Rewriter {
	return &Rewriter{completer: completer}
}

func (r *Rewriter) Run(ctx context.Context, text string, style *styles.Config) (RewrittenStory, error) {
	body, err := r.completer.Complete(ctx,
		style.SystemPrompt,
		fmt.Sprintf("Rewrite this article:\n\n%s", text),
		openai.ChatOptions{Model: style.Model})
	if err != nil {
		return RewrittenStory{}, fmt.Errorf("failed to rewrite article: %w", err)
	}

	return RewrittenStory{
		Body:    body,
		Title:   DeriveTitle(body),
		Slug:    DeriveSlug(time.Now()),
		Excerpt: DeriveExcerpt(body),
	}, nil
}

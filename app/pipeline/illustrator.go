package pipeline

import (
	"context"
	"fmt"

	"github.com/AlphaNewsNetwork/alphanews/app/openai"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
)

// ImageGenerator is the slice of the language-model client the
// illustrator needs.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, size, quality string) (string, error)
}

var _ ImageGenerator = (*openai.Client)(nil)

const imagePromptInstruction = "You write prompts for an image generation model. " +
	"Given a news story, respond with one short, vivid prompt (a single sentence) " +
	"for an illustrative image. Respond with the prompt only."

// Illustrator derives an image-generation prompt from the rewritten body
// with one chat completion, then requests one image at the style's fixed
// size and quality. No fallback image: any failure aborts the pipeline.
type Illustrator struct {
	completer Completer
	generator ImageGenerator
}

func NewIllustrator(completer Completer, generator ImageGenerator) *Illustrator {
	return &Illustrator{completer: completer, generator: generator}
}

func (i *Illustrator) Run(ctx context.Context, body string, style *styles.Config) (ImageAsset, error) {
	prompt, err := i.completer.Complete(ctx, imagePromptInstruction, body, openai.ChatOptions{Model: style.Model})
	if err != nil {
		return ImageAsset{}, fmt.Errorf("failed to derive image prompt: %w", err)
	}

	url, err := i.generator.GenerateImage(ctx, prompt, style.Image.Size, style.Image.Quality)
	if err != nil {
		return ImageAsset{}, fmt.Errorf("failed to generate image: %w", err)
	}

	return ImageAsset{Prompt: prompt, URL: url}, nil
}

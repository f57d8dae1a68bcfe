package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlphaNewsNetwork/alphanews/app/openai"
)

const (
	scriptMaxTokens   = 150
	scriptTemperature = 0.7
)

// ScriptWriter turns an entry's title and excerpt into a short video
// script with one bounded chat completion.
type ScriptWriter struct {
	completer Completer
}

func NewScriptWriter(completer Completer) *ScriptWriter {
	return &ScriptWriter{completer: completer}
}

func (s *ScriptWriter) Run(ctx context.Context, title, excerpt string) (string, error) {
	prompt := fmt.Sprintf("Create a concise, engaging 30-second video script based on this story:\nTitle: %s\nSummary: %s\nScript:", title, excerpt)

	temperature := scriptTemperature
	script, err := s.completer.Complete(ctx, "", prompt, openai.ChatOptions{
		MaxTokens:   scriptMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate video script: %w", err)
	}

	return strings.TrimSpace(script), nil
}

// Package prompt sends rendered piece trees to language models through langchaingo.
//
// A prompt is just a document: build it from pieces, then hand the root to
// [Generate] or [Complete]. Rendering happens once per call, right before the
// request, via [piece.Generate].
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	root := piece.MustStack(
//	    pieces.MustTag("task", pieces.NewText("Summarize the notes.")),
//	    pieces.MustTag("notes", notes),
//	).WithSeparator("\n\n")
//
//	answer, err := prompt.Generate(ctx, llm, root, llms.WithTemperature(0))
package prompt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rickchristie/piece"
	"github.com/tmc/langchaingo/llms"
)

// ErrNoChoices is returned when the model response holds no choices.
var ErrNoChoices = errors.New("model returned no choices")

// Response is a completion with token usage normalized across providers.
type Response struct {
	Content    string
	StopReason string
	Usage      Usage
	Duration   time.Duration
}

// Message renders root into a single text message with the given role.
// A nil root renders as an empty message.
func Message(role llms.ChatMessageType, root piece.Piece) llms.MessageContent {
	return llms.TextParts(role, piece.Generate(root))
}

// Messages renders a system and a user tree into a conversation.
// A nil system tree is omitted.
func Messages(system, user piece.Piece) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, 2)
	if system != nil {
		messages = append(messages, Message(llms.ChatMessageTypeSystem, system))
	}
	return append(messages, Message(llms.ChatMessageTypeHuman, user))
}

// Generate renders root as a single user message and returns the model's reply.
func Generate(ctx context.Context, model llms.Model, root piece.Piece, opts ...llms.CallOption) (string, error) {
	resp, err := Complete(ctx, model, nil, root, opts...)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Complete renders system and user into a conversation, calls the model, and returns
// the first choice with its token usage.
func Complete(
	ctx context.Context,
	model llms.Model,
	system, user piece.Piece,
	opts ...llms.CallOption,
) (*Response, error) {
	messages := Messages(system, user)

	start := time.Now()
	out, err := model.GenerateContent(ctx, messages, opts...)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if out == nil || len(out.Choices) == 0 || out.Choices[0] == nil {
		return nil, ErrNoChoices
	}

	choice := out.Choices[0]
	return &Response{
		Content:    choice.Content,
		StopReason: choice.StopReason,
		Usage:      usageOf(choice.GenerationInfo),
		Duration:   duration,
	}, nil
}

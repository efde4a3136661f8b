package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/lyricflow/internal/translation"
)

const (
	OPENAI_PROVIDER      = "openai"
	OPENAI_DEFAULT_MODEL = "gpt-4o-mini"
)

const openAITranslatePrompt = `You translate song lyrics.
Translate the user's text from %s to %s.
Keep line breaks and punctuation where they are.
Return only the translation, with no quotes, notes or explanations.`

// OpenAITranslator asks a chat model for the translation.
type OpenAITranslator struct {
	Client *openai.Client
	Model  string
}

func NewOpenAITranslator(apiKey, model string, timeout time.Duration) (*OpenAITranslator, error) {
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, fmt.Errorf("[OpenAIClient] %w", translation.ErrMissingAPIKey)
	}
	if model == "" {
		model = OPENAI_DEFAULT_MODEL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(MAX_RETRIES),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", timeout),
		slog.String("model", model))

	return &OpenAITranslator{Client: client, Model: model}, nil
}

func (o *OpenAITranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	start := time.Now()
	chatCompletion, err := o.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(openAITranslatePrompt, source, target)),
			openai.UserMessage(text),
		}),
		Model:       openai.F(openai.ChatModel(o.Model)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("[OpenAIClient] invalid API key: %w", err)
		}
		slog.Warn("[OpenAIClient] Chat completion failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", translation.Failure(OPENAI_PROVIDER, err)
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return "", translation.Failure(OPENAI_PROVIDER, errors.New("empty completion"))
	}

	return strings.TrimSpace(chatCompletion.Choices[0].Message.Content), nil
}

func (o *OpenAITranslator) HealthCheck(ctx context.Context) bool {
	_, err := o.Client.Models.Get(ctx, o.Model)
	if err != nil {
		slog.Warn("[OpenAIClient] Health check failed", slog.String("error", err.Error()))
	}
	return err == nil
}

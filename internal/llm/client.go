// Package llm はカード生成と画像からの単語抽出を Claude API で行います
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const cardPrompt = `You are an expert English-Spanish dictionary.
Analyze the English word provided: '%s'. IGNORE plurality, capitalization or conjugation.

Step 1: Standardization
- If it is a plural noun, convert it to SINGULAR (e.g. HUNTERS -> Hunter).
- If it is a conjugated verb, convert it to the INFINITIVE without 'to' (e.g. Running -> Run).
- Format: Sentence case (first letter uppercase, the rest lowercase).

Step 2: Translation
- Translate the standardized word from Step 1 (NOT the original input) into SPANISH.
- Example: input 'HUNTERS' -> standardized 'Hunter' -> translation 'Cazador'.

Step 3: JSON response
Return ONLY a JSON object:
{
  "word_en": "the standardized word (Step 1)",
  "translation": "Spanish translation (Step 2)",
  "phonetic": "phonetic transcription of the standardized word",
  "examples": ["English sentence using the standardized word", "Another sentence"]
}`

const extractPrompt = "Analyze the image and identify the main English word. IGNORE plurality or case. " +
	"Convert it to SINGULAR form (if noun) or INFINITIVE (if verb). " +
	"Return ONLY the standardized word in Sentence case (e.g. 'Hunters' -> 'Hunter'). No punctuation."

// messageCreator は anthropic.MessageService のうち使用するメソッドだけを抜き出したもの
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client は Claude API を使うカード生成プロバイダ
type Client struct {
	messages  messageCreator
	model     string
	maxTokens int64
}

func New(cfg config.LLMConfig) *Client {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return newWithCreator(&client.Messages, cfg)
}

func newWithCreator(m messageCreator, cfg config.LLMConfig) *Client {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultLLMMaxTokens
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultLLMModel
	}
	return &Client{messages: m, model: modelName, maxTokens: maxTokens}
}

// GenerateCard は単語を標準化し、スペイン語訳・発音記号・例文を生成します
func (c *Client) GenerateCard(ctx context.Context, word string) (*model.GeneratedCard, error) {
	logger := middleware.GetLogger(ctx).With("word", word)

	text, err := c.complete(ctx, anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(cardPrompt, word))))
	if err != nil {
		logger.Error("LLM request failed", "error", err)
		return nil, err
	}

	card, err := ParseCardJSON(text)
	if err != nil {
		logger.Warn("Failed to parse LLM response", "error", err, "response", text)
		return nil, err
	}
	if card.WordEN == "" {
		card.WordEN = word
	}
	return card, nil
}

// ExtractWord は画像に写っている英単語を1語だけ返します
func (c *Client) ExtractWord(ctx context.Context, image []byte, mimeType string) (string, error) {
	logger := middleware.GetLogger(ctx).With("mime_type", mimeType, "image_bytes", len(image))

	msg := anthropic.NewUserMessage(
		anthropic.NewImageBlockBase64(mimeType, base64.StdEncoding.EncodeToString(image)),
		anthropic.NewTextBlock(extractPrompt),
	)
	text, err := c.complete(ctx, msg)
	if err != nil {
		logger.Error("LLM image request failed", "error", err)
		return "", err
	}

	word := strings.Trim(strings.TrimSpace(text), ".,;:!?\"'")
	if word == "" {
		return "", fmt.Errorf("%w: empty word", model.ErrUpstreamParse)
	}
	return word, nil
}

func (c *Client) complete(ctx context.Context, msg anthropic.MessageParam) (string, error) {
	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  []anthropic.MessageParam{msg},
	})
	if err != nil {
		return "", errors.Join(model.ErrUpstreamUnavailable, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty response", model.ErrUpstreamParse)
	}
	return sb.String(), nil
}

// Disabled は API キー未設定時のプロバイダ。常に ErrUpstreamUnavailable を返す。
type Disabled struct{}

func (Disabled) GenerateCard(ctx context.Context, word string) (*model.GeneratedCard, error) {
	return nil, fmt.Errorf("%w: card generation is not configured", model.ErrUpstreamUnavailable)
}

func (Disabled) ExtractWord(ctx context.Context, image []byte, mimeType string) (string, error) {
	return "", fmt.Errorf("%w: image extraction is not configured", model.ErrUpstreamUnavailable)
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"go_5_flashcard_srs/internal/model"
)

// ParseCardJSON はモデルの応答からカードのJSONを取り出します。
// ```json フェンスや前後の文章が付いていても、最初の '{' から最後の '}' までを解釈する。
func ParseCardJSON(text string) (*model.GeneratedCard, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in response", model.ErrUpstreamParse)
	}

	var card model.GeneratedCard
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &card); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamParse, err)
	}
	if card.Translation == "" {
		return nil, fmt.Errorf("%w: translation is missing", model.ErrUpstreamParse)
	}
	if card.Examples == nil {
		card.Examples = []string{}
	}
	return &card, nil
}

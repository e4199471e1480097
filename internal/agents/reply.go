package agents

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"drinkingman/internal/models"
)

// CleanReply removes code-fence markers the model may wrap JSON in
func CleanReply(raw string) string {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func decodeReply(raw string) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := json.Unmarshal([]byte(CleanReply(raw)), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return &rec, nil
}

// ParseRecommendation decodes a recommendation reply. The result must carry
// a name and at least one ingredient.
func ParseRecommendation(raw string) (*models.Recommendation, error) {
	rec, err := decodeReply(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rec.Name) == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedReply)
	}
	if len(rec.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: missing ingredients", ErrMalformedReply)
	}
	return rec, nil
}

// ParseEnrichment decodes an enrichment reply. Only the description is
// required since the other fields are already known to the caller.
func ParseEnrichment(raw string) (*models.Recommendation, error) {
	rec, err := decodeReply(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rec.Description) == "" {
		return nil, fmt.Errorf("%w: missing description", ErrMalformedReply)
	}
	return rec, nil
}

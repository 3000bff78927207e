package huggingface

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/productlens/backend/internal/domain"
)

var errEmptyClassification = errors.New("classifier returned no labels")

type label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// MapLabels decodes a text-classification response into domain labels.
// The API answers either [[{label,score}...]] or [{label,score}...].
func MapLabels(body []byte) ([]domain.ClassificationLabel, error) {
	var nested [][]label
	if err := json.Unmarshal(body, &nested); err != nil || len(nested) == 0 {
		var flat []label
		if err := json.Unmarshal(body, &flat); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		nested = [][]label{flat}
	}

	raw := nested[0]
	if len(raw) == 0 {
		return nil, errEmptyClassification
	}

	labels := make([]domain.ClassificationLabel, 0, len(raw))
	for _, l := range raw {
		labels = append(labels, domain.ClassificationLabel{
			Label: l.Label,
			Score: decimal.NewFromFloat(l.Score).Round(4).InexactFloat64(),
		})
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Score > labels[j].Score
	})
	return labels, nil
}

package usecase

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/productlens/backend/internal/domain"
)

//go:embed checklist.yaml
var checklistYAML []byte

// ComplianceChecklist returns a fresh copy of the environmental compliance checklist
func ComplianceChecklist() (*domain.ComplianceChecklist, error) {
	var checklist domain.ComplianceChecklist
	if err := yaml.Unmarshal(checklistYAML, &checklist); err != nil {
		return nil, fmt.Errorf("failed to parse compliance checklist: %w", err)
	}
	return &checklist, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/productlens/backend/internal/domain"
	"github.com/productlens/backend/internal/infrastructure/nlp"
	"github.com/productlens/backend/internal/usecase"
)

type comparisonInput struct {
	Products []domain.ComparableProduct `json:"products"`
}

type hazardComparisonInput struct {
	Products []domain.HazardRequest `json:"products"`
}

func newSentimentCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment",
		Short: "Classify sentiment and extract keywords from text and reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.SentimentRequest
			if err := readInput(cmd, opts, &req); err != nil {
				return err
			}
			result, err := usecase.NewSentimentService(nlp.NewKeywordExtractor(), nil).Analyze(&req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, result)
		},
	}
}

func newPerformanceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "performance",
		Short: "Score conversion, rating and price position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.PerformanceRequest
			if err := readInput(cmd, opts, &req); err != nil {
				return err
			}
			result, err := usecase.NewPerformanceService().Analyze(&req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, result)
		},
	}
}

func newHazardCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hazard",
		Short: "Score environmental hazards of one product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.HazardRequest
			if err := readInput(cmd, opts, &req); err != nil {
				return err
			}
			result, err := usecase.NewHazardService(nil, 0, nil).Assess(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, result)
		},
	}
}

func newCompareCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare prices, features and market position of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in comparisonInput
			if err := readInput(cmd, opts, &in); err != nil {
				return err
			}
			result, err := usecase.NewComparisonService().Compare(in.Products)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, result)
		},
	}
}

func newHazardCompareCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hazard-compare",
		Short: "Rank products by environmental risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in hazardComparisonInput
			if err := readInput(cmd, opts, &in); err != nil {
				return err
			}
			result, err := usecase.NewHazardService(nil, 0, nil).Compare(in.Products)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, result)
		},
	}
}

func newChecklistCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "checklist",
		Short: "Print the environmental compliance checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := usecase.ComplianceChecklist()
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, checklist)
		},
	}
}

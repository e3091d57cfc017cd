// Package predictor scores a feature matrix against a gradient-boosted tree
// model and returns the top-K candidate templates by score. Two production
// backends satisfy the same capability set (spec.md §4.7, §9): a
// LightGBM-equivalent backend backed by a pure-Go ensemble scorer, and a
// CatBoost-equivalent backend reading a flat oblivious-tree forest. A mock
// backend is also provided for tests that don't need a real model file.
package predictor

import (
	"fmt"
	"sort"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
	"github.com/meridianiq/emailpredict/internal/predictengine/featurematrix"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
)

// TemplatePrediction is one scored row surviving top-K selection.
type TemplatePrediction struct {
	Index      int
	Score      float64
	TemplateID int
	Metadata   metadata.CandidateTemplate
}

// Predictor scores every row of a flat feature matrix against candidate
// templates and returns the top-K by score.
type Predictor interface {
	PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error)
}

// ScoreRows is the shape of a function that scores all rows in a single call
// and returns per-row scores in row order. No backend in this package uses
// it: each backend's PredictTopTemplates scores its rows itself and then
// calls selectTopK.
type ScoreRows func(flatMatrix []float32, numRows int) ([]float64, error)

// selectTopK ranks scores descending, breaking ties by ascending
// index, and returns the first min(topK, numRows) predictions (spec.md §4.7,
// §8 "Top-K").
func selectTopK(scores []float64, templates []metadata.CandidateTemplate, topK int) []TemplatePrediction {
	n := len(templates)
	if topK > n {
		topK = n
	}
	if topK < 0 {
		topK = 0
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		ia, ib := indices[a], indices[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return ia < ib
	})

	out := make([]TemplatePrediction, 0, topK)
	for _, idx := range indices[:topK] {
		out = append(out, TemplatePrediction{
			Index:      idx,
			Score:      scores[idx],
			TemplateID: templates[idx].TemplateID,
			Metadata:   templates[idx],
		})
	}
	return out
}

// checkMatrixShape validates the flat-matrix precondition of spec.md §4.7:
// len(flatMatrix) == len(templates) * FeaturesPerRow.
func checkMatrixShape(flatMatrix []float32, templates []metadata.CandidateTemplate) error {
	want := len(templates) * featurematrix.FeaturesPerRow
	if len(flatMatrix) != want {
		return fmt.Errorf("%w: feature matrix has %d values, want %d for %d templates of %d columns",
			predicterrors.ErrArgument, len(flatMatrix), want, len(templates), featurematrix.FeaturesPerRow)
	}
	return nil
}

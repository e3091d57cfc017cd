package predictor

import (
	"fmt"

	"github.com/dmitryikh/leaves"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
	"github.com/meridianiq/emailpredict/internal/predictengine/featurematrix"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
)

// LightGBM wraps a pure-Go LightGBM ensemble loaded once at construction.
// Scoring uses normal (non-raw) prediction across all iterations, matching
// the reference CLI's start-iteration-0/all-iterations call shape.
type LightGBM struct {
	model *leaves.Ensemble
}

// NewLightGBM loads the boosted-forest model at path.
func NewLightGBM(modelPath string) (*LightGBM, error) {
	model, err := leaves.LGEnsembleFromFile(modelPath, true)
	if err != nil {
		return nil, fmt.Errorf("%w: loading lightgbm model %q: %v", predicterrors.ErrConfiguration, modelPath, err)
	}
	return &LightGBM{model: model}, nil
}

// PredictTopTemplates scores every row and returns the top-K by score.
func (p *LightGBM) PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error) {
	if err := checkMatrixShape(flatMatrix, templates); err != nil {
		return nil, err
	}

	scores := make([]float64, len(templates))
	row := make([]float64, featurematrix.FeaturesPerRow)
	for i := range templates {
		offset := i * featurematrix.FeaturesPerRow
		for j := 0; j < featurematrix.FeaturesPerRow; j++ {
			row[j] = float64(flatMatrix[offset+j])
		}
		scores[i] = p.model.PredictSingle(row, 0)
	}

	return selectTopK(scores, templates, topK), nil
}

package predictor

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/meridianiq/emailpredict/internal/predictengine/featurematrix"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
)

// Mock scores rows with a deterministic hash of their feature values instead
// of a real model, for tests that exercise top-K selection without needing a
// model file on disk.
type Mock struct{}

// NewMock returns a Mock predictor.
func NewMock() *Mock {
	return &Mock{}
}

func (p *Mock) PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error) {
	if err := checkMatrixShape(flatMatrix, templates); err != nil {
		return nil, err
	}

	scores := make([]float64, len(templates))
	for i := range templates {
		offset := i * featurematrix.FeaturesPerRow
		row := flatMatrix[offset : offset+featurematrix.FeaturesPerRow]

		h := sha256.New()
		buf := make([]byte, 4)
		for _, v := range row {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			h.Write(buf)
		}
		sum := h.Sum(nil)
		u := binary.LittleEndian.Uint32(sum)
		scores[i] = float64(u%10_000) / 10_000.0
	}

	return selectTopK(scores, templates, topK), nil
}

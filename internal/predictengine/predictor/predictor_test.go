package predictor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridianiq/emailpredict/internal/predictengine/featurematrix"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
)

func TestSelectTopK_OrdersByScoreDescending(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}, {TemplateID: 2}, {TemplateID: 3}}
	scores := []float64{0.1, 0.9, 0.5}

	got := selectTopK(scores, templates, 2)
	require.Len(t, got, 2)
	require.Equal(t, 2, got[0].TemplateID)
	require.Equal(t, 3, got[1].TemplateID)
}

func TestSelectTopK_TiesBrokenByAscendingIndex(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 10}, {TemplateID: 20}, {TemplateID: 30}}
	scores := []float64{0.5, 0.5, 0.9}

	got := selectTopK(scores, templates, 3)
	require.Equal(t, []int{30, 10, 20}, []int{got[0].TemplateID, got[1].TemplateID, got[2].TemplateID})
}

func TestSelectTopK_ClampsToAvailableRows(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}}
	scores := []float64{0.5}

	got := selectTopK(scores, templates, 10)
	require.Len(t, got, 1)
}

func TestSelectTopK_NegativeTopKYieldsEmpty(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}}
	scores := []float64{0.5}

	got := selectTopK(scores, templates, -1)
	require.Empty(t, got)
}

func TestCheckMatrixShape_MismatchIsArgumentError(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}, {TemplateID: 2}}
	err := checkMatrixShape(make([]float32, featurematrix.FeaturesPerRow), templates)
	require.Error(t, err)
}

func TestCheckMatrixShape_ExactSizeIsValid(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}, {TemplateID: 2}}
	err := checkMatrixShape(make([]float32, 2*featurematrix.FeaturesPerRow), templates)
	require.NoError(t, err)
}

func TestMock_PredictTopTemplates(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}, {TemplateID: 2}}
	row := make([]float32, 2*featurematrix.FeaturesPerRow)
	row[featurematrix.FeaturesPerRow] = 1 // give the second row distinct features

	m := NewMock()
	preds, err := m.PredictTopTemplates(row, templates, 2)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	require.NotEqual(t, preds[0].Score, preds[1].Score, "distinct rows should hash to distinct mock scores")
}

func TestMock_RejectsMismatchedMatrix(t *testing.T) {
	templates := []metadata.CandidateTemplate{{TemplateID: 1}}
	m := NewMock()
	_, err := m.PredictTopTemplates(make([]float32, 3), templates, 1)
	require.Error(t, err)
}

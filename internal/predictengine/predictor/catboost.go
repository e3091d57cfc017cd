package predictor

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
	"github.com/meridianiq/emailpredict/internal/predictengine/featurematrix"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
)

// obliviousTree is one full-depth symmetric tree: every node at a given
// depth splits on the same (featureIndex, border) pair, so a row's leaf is
// addressable directly from its per-depth comparison bits.
type obliviousTree struct {
	splits     []obliviousSplit
	leafValues []float64
}

type obliviousSplit struct {
	featureIndex uint32
	border       float32
}

func (t obliviousTree) score(row []float32) float64 {
	leaf := 0
	for _, s := range t.splits {
		leaf <<= 1
		if row[s.featureIndex] > s.border {
			leaf |= 1
		}
	}
	return t.leafValues[leaf]
}

// CatBoost is a hand-rolled reader for a flat oblivious-tree forest. No
// pure-Go CatBoost model reader exists in the ecosystem, so models are
// exported to this package's own binary layout offline and loaded here
// without any third-party dependency.
//
// File layout (little-endian):
//
//	uint32   bias (as float32 bits)
//	uint32   tree count
//	for each tree:
//	  uint32 depth
//	  depth * (uint32 featureIndex, uint32 border as float32 bits)
//	  (1 << depth) * float64 leaf value (8 bytes)
type CatBoost struct {
	bias  float64
	trees []obliviousTree
}

// NewCatBoost loads the oblivious-tree forest at path.
func NewCatBoost(modelPath string) (*CatBoost, error) {
	f, err := os.Open(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening catboost model %q: %v", predicterrors.ErrConfiguration, modelPath, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var biasBits uint32
	if err := binary.Read(r, binary.LittleEndian, &biasBits); err != nil {
		return nil, fmt.Errorf("%w: reading catboost bias: %v", predicterrors.ErrConfiguration, err)
	}

	var treeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &treeCount); err != nil {
		return nil, fmt.Errorf("%w: reading catboost tree count: %v", predicterrors.ErrConfiguration, err)
	}

	trees := make([]obliviousTree, 0, treeCount)
	for i := uint32(0); i < treeCount; i++ {
		tree, err := readObliviousTree(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading catboost tree %d: %v", predicterrors.ErrConfiguration, i, err)
		}
		trees = append(trees, tree)
	}

	return &CatBoost{
		bias:  float64(math.Float32frombits(biasBits)),
		trees: trees,
	}, nil
}

func readObliviousTree(r io.Reader) (obliviousTree, error) {
	var depth uint32
	if err := binary.Read(r, binary.LittleEndian, &depth); err != nil {
		return obliviousTree{}, err
	}

	splits := make([]obliviousSplit, depth)
	for d := uint32(0); d < depth; d++ {
		var featureIndex uint32
		var borderBits uint32
		if err := binary.Read(r, binary.LittleEndian, &featureIndex); err != nil {
			return obliviousTree{}, err
		}
		if err := binary.Read(r, binary.LittleEndian, &borderBits); err != nil {
			return obliviousTree{}, err
		}
		splits[d] = obliviousSplit{featureIndex: featureIndex, border: math.Float32frombits(borderBits)}
	}

	numLeaves := uint32(1) << depth
	leaves := make([]float64, numLeaves)
	for i := uint32(0); i < numLeaves; i++ {
		if err := binary.Read(r, binary.LittleEndian, &leaves[i]); err != nil {
			return obliviousTree{}, err
		}
	}

	return obliviousTree{splits: splits, leafValues: leaves}, nil
}

// PredictTopTemplates scores every row and returns the top-K by score.
func (p *CatBoost) PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error) {
	if err := checkMatrixShape(flatMatrix, templates); err != nil {
		return nil, err
	}

	scores := make([]float64, len(templates))
	for i := range templates {
		offset := i * featurematrix.FeaturesPerRow
		row := flatMatrix[offset : offset+featurematrix.FeaturesPerRow]

		sum := p.bias
		for _, tree := range p.trees {
			sum += tree.score(row)
		}
		scores[i] = sum
	}

	return selectTopK(scores, templates, topK), nil
}

package metadata

import (
	"fmt"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
)

// Store is the immutable, in-process view over the template-metadata store:
// the two candidate-template classes plus per-firm statistics and usage,
// loaded once at engine construction and shared read-only across queries.
type Store struct {
	StandardTemplates []CandidateTemplate
	ComplexTemplates  []CandidateTemplate

	FirmStats map[string]FirmStats
	FirmUsage map[string]map[int]FirmTemplateUsage
}

type templateRow struct {
	TemplateID        int32    `msgpack:"template_id"`
	Template          []string `msgpack:"template"`
	SupportCount      int32    `msgpack:"support_count"`
	CoveragePct       float32  `msgpack:"coverage_pct"`
	InMinedRules      bool     `msgpack:"in_mined_rules"`
	MaxRuleConfidence float32  `msgpack:"max_rule_confidence"`
	AvgRuleConfidence float32  `msgpack:"avg_rule_confidence"`

	UsesMiddleName      bool `msgpack:"uses_middle_name"`
	UsesMultipleFirsts  bool `msgpack:"uses_multiple_firsts"`
	UsesMultipleMiddles bool `msgpack:"uses_multiple_middles"`
	UsesMultipleLasts   bool `msgpack:"uses_multiple_lasts"`
}

type firmMapRow struct {
	TemplateIDs       []int32 `msgpack:"template_ids"`
	NumTemplates      int32   `msgpack:"num_templates"`
	NumInvestors      int32   `msgpack:"num_investors"`
	DiversityRatio    float32 `msgpack:"diversity_ratio"`
	IsSingleTemplate  bool    `msgpack:"is_single_template"`
	IsSharedInfra     bool    `msgpack:"is_shared_infra"`
	FirmIsMultiDomain bool    `msgpack:"firm_is_multi_domain"`
}

// Load reads the three required MessagePack blobs (standard candidate
// templates, complex candidate templates, firm->template map) and returns an
// immutable Store. Any read, parse, or token-grammar error is a fatal
// configuration error (spec.md §4.4, §7).
func Load(standardPath, complexPath, firmTemplateMapPath string) (*Store, error) {
	standard, err := loadCandidateTemplates(standardPath)
	if err != nil {
		return nil, err
	}
	complexTemplates, err := loadCandidateTemplates(complexPath)
	if err != nil {
		return nil, err
	}

	firmStats, firmUsage, err := loadFirmTemplateMap(firmTemplateMapPath)
	if err != nil {
		return nil, err
	}

	return &Store{
		StandardTemplates: standard,
		ComplexTemplates:  complexTemplates,
		FirmStats:         firmStats,
		FirmUsage:         firmUsage,
	}, nil
}

func loadCandidateTemplates(path string) ([]CandidateTemplate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading candidate templates %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	var rows []templateRow
	if err := msgpack.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("%w: parsing candidate templates %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	out := make([]CandidateTemplate, 0, len(rows))
	for _, row := range rows {
		tokens, err := ParseTokenSequence(row.Template)
		if err != nil {
			return nil, fmt.Errorf("%w: candidate template %d in %q: %v", predicterrors.ErrConfiguration, row.TemplateID, path, err)
		}
		out = append(out, CandidateTemplate{
			TemplateID:          int(row.TemplateID),
			TokenSeq:            tokens,
			SupportCount:        int(row.SupportCount),
			CoveragePct:         row.CoveragePct,
			InMinedRules:        row.InMinedRules,
			MaxRuleConfidence:   row.MaxRuleConfidence,
			AvgRuleConfidence:   row.AvgRuleConfidence,
			UsesMiddleName:      row.UsesMiddleName,
			UsesMultipleFirsts:  row.UsesMultipleFirsts,
			UsesMultipleMiddles: row.UsesMultipleMiddles,
			UsesMultipleLasts:   row.UsesMultipleLasts,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TemplateID < out[j].TemplateID })
	return out, nil
}

func loadFirmTemplateMap(path string) (map[string]FirmStats, map[string]map[int]FirmTemplateUsage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading firm template map %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	var rows map[string]firmMapRow
	if err := msgpack.Unmarshal(b, &rows); err != nil {
		return nil, nil, fmt.Errorf("%w: parsing firm template map %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	firmStats := make(map[string]FirmStats, len(rows))
	firmUsage := make(map[string]map[int]FirmTemplateUsage, len(rows))

	for firm, row := range rows {
		firmStats[firm] = FirmStats{
			NumTemplates:      int(row.NumTemplates),
			NumInvestors:      int(row.NumInvestors),
			DiversityRatio:    row.DiversityRatio,
			IsSingleTemplate:  row.IsSingleTemplate,
			IsSharedInfra:     row.IsSharedInfra,
			FirmIsMultiDomain: row.FirmIsMultiDomain,
		}

		if len(row.TemplateIDs) == 0 {
			firmUsage[firm] = map[int]FirmTemplateUsage{}
			continue
		}

		supportCounts := make(map[int]int, len(row.TemplateIDs)/2+1)
		maxSupport := 0
		for _, tid := range row.TemplateIDs {
			supportCounts[int(tid)]++
			if supportCounts[int(tid)] > maxSupport {
				maxSupport = supportCounts[int(tid)]
			}
		}

		total := float32(len(row.TemplateIDs))
		usage := make(map[int]FirmTemplateUsage, len(supportCounts))
		for tid, count := range supportCounts {
			usage[tid] = FirmTemplateUsage{
				SupportCount:  count,
				CoveragePct:   float32(count) / total,
				IsTopTemplate: count == maxSupport,
			}
		}
		firmUsage[firm] = usage
	}

	return firmStats, firmUsage, nil
}

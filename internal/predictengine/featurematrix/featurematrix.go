// Package featurematrix builds the fixed-width float32 feature matrix the
// predictor scores, one row per candidate template in a selected class.
package featurematrix

import (
	"github.com/meridianiq/emailpredict/internal/predictengine/features"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
	"github.com/meridianiq/emailpredict/internal/predictengine/namedecomp"
)

// FeaturesPerRow is the fixed column count of one feature-matrix row. This
// ordering is shared implicitly with the offline trainer: reordering it
// invalidates every bundled model.
const FeaturesPerRow = 27

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Build produces a flat, row-major float32 matrix of length
// FeaturesPerRow * len(templates). Row i corresponds to templates[i]; this
// alignment with candidate-template order is load-bearing (spec.md §4.6).
func Build(
	name namedecomp.Decomposed,
	flags features.Flags,
	firmName string,
	templates []metadata.CandidateTemplate,
	firmStats map[string]metadata.FirmStats,
	firmUsage map[string]map[int]metadata.FirmTemplateUsage,
) []float32 {
	flat := make([]float32, 0, len(templates)*FeaturesPerRow)

	nameHasMiddle := name.HasMiddleName()
	nameHasMultipleFirsts := name.HasMultipleFirstNames()
	nameHasMultipleMiddles := name.HasMultipleMiddleNames()
	nameHasMultipleLasts := name.HasMultipleLastNames()

	stats := firmStats[firmName] // zero value if absent, per spec.md §4.6
	usage := firmUsage[firmName] // nil map if absent; lookups on it are safe zero values

	for _, tmpl := range templates {
		u, inFirmTemplates := usage[tmpl.TemplateID]

		clash := (tmpl.UsesMiddleName && nameHasMiddle) ||
			(tmpl.UsesMultipleFirsts && nameHasMultipleFirsts) ||
			(tmpl.UsesMultipleMiddles && nameHasMultipleMiddles) ||
			(tmpl.UsesMultipleLasts && nameHasMultipleLasts)

		flat = append(flat,
			boolToFloat(inFirmTemplates),
			boolToFloat(stats.IsSharedInfra),
			boolToFloat(stats.FirmIsMultiDomain),
			boolToFloat(flags.HasGermanChar),
			boolToFloat(flags.HasNFKDNormalized),
			boolToFloat(flags.HasNickname),
			boolToFloat(nameHasMultipleFirsts),
			boolToFloat(nameHasMiddle),
			boolToFloat(nameHasMultipleMiddles),
			boolToFloat(nameHasMultipleLasts),
			float32(tmpl.SupportCount),
			tmpl.CoveragePct,
			boolToFloat(tmpl.InMinedRules),
			tmpl.MaxRuleConfidence,
			tmpl.AvgRuleConfidence,
			boolToFloat(tmpl.UsesMiddleName),
			boolToFloat(tmpl.UsesMultipleFirsts),
			boolToFloat(tmpl.UsesMultipleMiddles),
			boolToFloat(tmpl.UsesMultipleLasts),
			float32(u.SupportCount),
			u.CoveragePct,
			boolToFloat(u.IsTopTemplate),
			boolToFloat(clash),
			float32(stats.NumTemplates),
			float32(stats.NumInvestors),
			stats.DiversityRatio,
			boolToFloat(stats.IsSingleTemplate),
		)
	}

	return flat
}

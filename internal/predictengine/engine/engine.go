// Package engine wires the template metadata store, domain resolver, and
// predictor backends into the single Predict entry point (spec.md §4.10).
package engine

import (
	"context"
	"fmt"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
	"github.com/meridianiq/emailpredict/internal/platform/logger"
	"github.com/meridianiq/emailpredict/internal/predictengine/config"
	"github.com/meridianiq/emailpredict/internal/predictengine/domainresolver"
	"github.com/meridianiq/emailpredict/internal/predictengine/enrichment"
	"github.com/meridianiq/emailpredict/internal/predictengine/featurematrix"
	"github.com/meridianiq/emailpredict/internal/predictengine/features"
	"github.com/meridianiq/emailpredict/internal/predictengine/localpart"
	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
	"github.com/meridianiq/emailpredict/internal/predictengine/namedecomp"
	"github.com/meridianiq/emailpredict/internal/predictengine/predictor"
	"github.com/meridianiq/emailpredict/internal/predictengine/verification"
)

// EmailPredictionResult is one ranked, rendered prediction, optionally
// annotated with verification and enrichment results.
type EmailPredictionResult struct {
	Email      string
	Score      float64
	TemplateID int

	Verification *verification.Result
	Enrichment   *enrichment.Result
}

// Engine is the stateless (beyond the domain resolver's fuzzy-match cache)
// prediction entry point. Safe for concurrent use.
type Engine struct {
	log *logger.Logger

	store          *metadata.Store
	domainResolver *domainresolver.Resolver

	standardPredictor predictor.Predictor
	complexPredictor  predictor.Predictor

	verificationClient *verification.Client
	enrichmentClient   *enrichment.Client

	topKDefault int
}

// New constructs an Engine from cfg: loads template metadata, optionally
// constructs a domain resolver, builds the configured predictor backends,
// and wires the optional verification/enrichment clients (spec.md §4.4, §6).
func New(cfg config.Config, log *logger.Logger) (*Engine, error) {
	store, err := metadata.Load(cfg.Metadata.StandardTemplatesPath, cfg.Metadata.ComplexTemplatesPath, cfg.Metadata.FirmTemplateMapPath)
	if err != nil {
		return nil, err
	}

	var resolver *domainresolver.Resolver
	if cfg.Metadata.CanonicalFirmsPath != "" && cfg.Metadata.FirmCachePath != "" {
		directory, err := metadata.LoadFirmDirectory(cfg.Metadata.CanonicalFirmsPath)
		if err != nil {
			return nil, err
		}
		cache, err := metadata.LoadFuzzyMatchCache(cfg.Metadata.FirmCachePath)
		if err != nil {
			return nil, err
		}
		resolver = domainresolver.New(directory, cache)
	}

	standardPredictor, err := newPredictor(cfg.StandardPredictor)
	if err != nil {
		return nil, fmt.Errorf("standard_predictor: %w", err)
	}
	complexPredictor, err := newPredictor(cfg.ComplexPredictor)
	if err != nil {
		return nil, fmt.Errorf("complex_predictor: %w", err)
	}

	topKDefault := cfg.TopKDefault
	if topKDefault <= 0 {
		topKDefault = 3
	}

	e := &Engine{
		log:               log,
		store:             store,
		domainResolver:    resolver,
		standardPredictor: standardPredictor,
		complexPredictor:  complexPredictor,
		topKDefault:       topKDefault,
	}

	if cfg.Verification != nil && cfg.Verification.APIKey != "" {
		e.verificationClient = verification.New(*cfg.Verification)
	}
	if cfg.Enrichment != nil && cfg.Enrichment.APIKey != "" {
		e.enrichmentClient = enrichment.New(*cfg.Enrichment)
	}

	return e, nil
}

func newPredictor(cfg config.PredictorConfig) (predictor.Predictor, error) {
	switch cfg.Backend {
	case "lightgbm":
		return predictor.NewLightGBM(cfg.ModelPath)
	case "catboost":
		return predictor.NewCatBoost(cfg.ModelPath)
	default:
		return nil, fmt.Errorf("%w: unknown predictor backend %q", predicterrors.ErrConfiguration, cfg.Backend)
	}
}

// Predict ranks candidate email templates for investorName at firmName,
// renders the top topK into full addresses, and optionally verifies and
// enriches the result (spec.md §4.10). If topK <= 0, the engine's configured
// default is used. domain, when nil, is resolved via the configured domain
// resolver; ErrMissingDomain is returned if neither is available.
func (e *Engine) Predict(ctx context.Context, investorName, firmName string, topK int, domain *string) ([]EmailPredictionResult, error) {
	if topK <= 0 {
		topK = e.topKDefault
	}

	domainString, matchedFirm, score, err := e.resolveDomain(firmName, domain)
	if err != nil {
		return nil, err
	}
	if matchedFirm != "" {
		e.log.Info("domain resolved", "matched_firm", matchedFirm, "score", score)
	}

	name := namedecomp.Decompose(investorName)
	flags := features.Extract(investorName)

	complexName := name.HasMiddleName() || name.HasMultipleFirstNames() || name.HasMultipleLastNames() ||
		flags.HasGermanChar || flags.HasNFKDNormalized

	templates := e.store.StandardTemplates
	pred := e.standardPredictor
	if complexName {
		templates = e.store.ComplexTemplates
		pred = e.complexPredictor
	}

	// firmName, not the domain resolver's matched/canonical firm, is the
	// lookup key into firm stats/usage — preserved from the reference
	// implementation's actual (not its documented) behavior.
	flatMatrix := featurematrix.Build(name, flags, firmName, templates, e.store.FirmStats, e.store.FirmUsage)

	topPredictions, err := pred.PredictTopTemplates(flatMatrix, templates, topK)
	if err != nil {
		return nil, err
	}

	results := make([]EmailPredictionResult, 0, len(topPredictions))
	for _, p := range topPredictions {
		localPart, ok := localpart.Render(name, p.Metadata.TokenSeq)
		if !ok {
			continue
		}
		results = append(results, EmailPredictionResult{
			Email:      localPart + "@" + domainString,
			Score:      p.Score,
			TemplateID: p.TemplateID,
		})
	}

	bestVerified := e.verify(ctx, results)
	e.enrich(ctx, investorName, firmName, bestVerified)

	return results, nil
}

func (e *Engine) resolveDomain(firmName string, explicit *string) (domain string, matchedFirm string, score float64, err error) {
	if explicit != nil {
		return *explicit, "", 0, nil
	}
	if e.domainResolver == nil {
		return "", "", 0, fmt.Errorf("%w: no domain provided and no domain resolver configured", predicterrors.ErrMissingDomain)
	}
	res := e.domainResolver.Resolve(firmName)
	return res.Domain, res.MatchedFirm, res.Score, nil
}

// verify annotates every result in place when a verification client is
// configured, and returns a pointer to the element with the best
// verification score (nil if verification is disabled or every lookup
// failed). The pointer aliases results, so callers must keep results alive
// and unmoved until after enrich runs.
func (e *Engine) verify(ctx context.Context, results []EmailPredictionResult) *EmailPredictionResult {
	if e.verificationClient == nil {
		return nil
	}

	var best *EmailPredictionResult
	for i := range results {
		res, err := e.verificationClient.VerifyEmail(ctx, results[i].Email)
		if err != nil {
			e.log.Warn("email verification failed", "error", err)
			continue
		}
		if res == nil {
			continue
		}
		results[i].Verification = res

		if best == nil || res.Score > best.Verification.Score {
			best = &results[i]
		}
	}

	return best
}

func (e *Engine) enrich(ctx context.Context, investorName, firmName string, best *EmailPredictionResult) {
	if e.enrichmentClient == nil || best == nil {
		return
	}

	enriched, err := e.enrichmentClient.EnrichContact(ctx, investorName, firmName, best.Email)
	if err != nil {
		e.log.Warn("contact enrichment failed", "error", err)
		return
	}
	best.Enrichment = enriched
}

// Package errors defines the sentinel errors surfaced by the prediction
// engine's public API (spec §7). Callers should match them with errors.Is;
// every sentinel here is wrapped with context via fmt.Errorf at the point
// it's returned.
package errors

import "errors"

var (
	// ErrConfiguration covers invalid file paths, unreadable files, malformed
	// MessagePack, unknown token flags, and model load failures. Raised only
	// at engine construction.
	ErrConfiguration = errors.New("configuration error")

	// ErrArgument covers feature-matrix size mismatches, returned by the
	// predictor backends at the call site. It is not used for unknown name
	// groups: a token with an unknown group fails parsing with
	// ErrConfiguration.
	ErrArgument = errors.New("argument error")

	// ErrMissingDomain is returned by Predict when no explicit domain is
	// supplied and no domain resolver is configured.
	ErrMissingDomain = errors.New("missing domain")
)

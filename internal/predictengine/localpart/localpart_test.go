package localpart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
	"github.com/meridianiq/emailpredict/internal/predictengine/namedecomp"
)

func TestRender_FirstDotLast(t *testing.T) {
	name := namedecomp.Decompose("Alice Carter")
	tokens := []metadata.TemplateToken{
		{Group: metadata.GroupFirst, Index: 0},
		{Separator: "."},
		{Group: metadata.GroupLast, Index: 0},
	}

	got, ok := Render(name, tokens)
	require.True(t, ok)
	require.Equal(t, "alice.carter", got)
}

func TestRender_InitialUsesFirstByteOnly(t *testing.T) {
	name := namedecomp.Decompose("Alice Carter")
	tokens := []metadata.TemplateToken{
		{Group: metadata.GroupFirst, Index: 0, UseInitial: true},
		{Group: metadata.GroupLast, Index: 0},
	}

	got, ok := Render(name, tokens)
	require.True(t, ok)
	require.Equal(t, "acarter", got)
}

func TestRender_OutOfRangeIndexIsIncompatible(t *testing.T) {
	name := namedecomp.Decompose("Alice Carter")
	tokens := []metadata.TemplateToken{
		{Group: metadata.GroupMiddle, Index: 0},
	}

	_, ok := Render(name, tokens)
	require.False(t, ok)
}

func TestRender_EmptyInitialComponentIsIncompatible(t *testing.T) {
	name := namedecomp.Decomposed{FirstNames: []string{""}}
	tokens := []metadata.TemplateToken{
		{Group: metadata.GroupFirst, Index: 0, UseInitial: true},
	}

	_, ok := Render(name, tokens)
	require.False(t, ok)
}

func TestRender_UnusedNormalizationFlagsDoNotAffectOutput(t *testing.T) {
	name := namedecomp.Decompose("Jurgen Muller")
	base := []metadata.TemplateToken{{Group: metadata.GroupFirst, Index: 0}}
	decorated := []metadata.TemplateToken{{Group: metadata.GroupFirst, Index: 0, UseOriginal: true, UseNFKD: true, UseNickname: true}}

	gotBase, ok1 := Render(name, base)
	gotDecorated, ok2 := Render(name, decorated)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, gotBase, gotDecorated)
}

func TestRender_MultiSegmentTemplate(t *testing.T) {
	name := namedecomp.Decompose("Mary Jane Watson")
	tokens := []metadata.TemplateToken{
		{Group: metadata.GroupFirst, Index: 0, UseInitial: true},
		{Group: metadata.GroupMiddle, Index: 0, UseInitial: true},
		{Group: metadata.GroupLast, Index: 0},
	}

	got, ok := Render(name, tokens)
	require.True(t, ok)
	require.Equal(t, "mjwatson", got)
}

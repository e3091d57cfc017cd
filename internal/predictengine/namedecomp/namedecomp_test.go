package namedecomp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompose_Simple(t *testing.T) {
	d := Decompose("John Smith")
	require.Equal(t, []string{"john"}, d.FirstNames)
	require.Empty(t, d.MiddleNames)
	require.Equal(t, []string{"smith"}, d.LastNames)
}

func TestDecompose_HonorificsAndSuffix(t *testing.T) {
	d := Decompose("Mr. Dr. John Smith Jr")
	require.Equal(t, []string{"john"}, d.FirstNames)
	require.Empty(t, d.MiddleNames)
	require.Equal(t, []string{"smith"}, d.LastNames)
}

func TestDecompose_SurnameParticle(t *testing.T) {
	d := Decompose("José de la Cruz")
	require.Equal(t, []string{"jose"}, d.FirstNames)
	require.Empty(t, d.MiddleNames)
	require.Equal(t, []string{"de", "la", "cruz"}, d.LastNames)
}

func TestDecompose_HyphenatedFirstName(t *testing.T) {
	d := Decompose("Anne-Marie Dupont")
	require.Equal(t, []string{"anne", "marie"}, d.FirstNames)
	require.Equal(t, []string{"dupont"}, d.LastNames)
}

func TestDecompose_MiddleName(t *testing.T) {
	d := Decompose("Alice Beth Carter")
	require.Equal(t, []string{"alice"}, d.FirstNames)
	require.Equal(t, []string{"beth"}, d.MiddleNames)
	require.Equal(t, []string{"carter"}, d.LastNames)
}

func TestDecompose_Empty(t *testing.T) {
	d := Decompose("   ")
	require.Empty(t, d.FirstNames)
	require.Empty(t, d.MiddleNames)
	require.Empty(t, d.LastNames)
}

func TestDecompose_IdempotentWithoutParticle(t *testing.T) {
	d1 := Decompose("Alice Beth Carter")
	joined := ""
	for i, tok := range append(append(append([]string{}, d1.FirstNames...), d1.MiddleNames...), d1.LastNames...) {
		if i > 0 {
			joined += " "
		}
		joined += tok
	}
	d2 := Decompose(joined)
	require.Equal(t, d1, d2)
}

func TestDecompose_Flags(t *testing.T) {
	d := Decompose("Alice Beth Carter")
	require.True(t, d.HasMiddleName())
	require.False(t, d.HasMultipleFirstNames())
	require.False(t, d.HasMultipleMiddleNames())
	require.False(t, d.HasMultipleLastNames())
}

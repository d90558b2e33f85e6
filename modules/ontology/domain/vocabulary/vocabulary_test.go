package vocabulary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/modules/ontology/domain/vocabulary"
	"github.com/xe-labs/ontoview/pkg/configuration"
)

func TestVocabulary_IRI(t *testing.T) {
	v := vocabulary.New(configuration.DefaultNamespace)

	iri, err := v.IRI(vocabulary.IncludesTaskSets)
	require.NoError(t, err)
	require.Equal(t, configuration.DefaultNamespace+"Включает_наборы", iri.String())

	iri, err = v.IRI("Project_Alpha-2.1")
	require.NoError(t, err)
	require.True(t, v.Contains(iri.String()))

	for _, bad := range []string{"", "a b", "x>", "x}", "-lead", "trail.", "a#b", "a/b"} {
		_, err := v.IRI(bad)
		require.ErrorIs(t, err, vocabulary.ErrInvalidLocalName, bad)
	}
}

func TestVocabulary_Contains(t *testing.T) {
	v := vocabulary.New("http://example.org/onto#")
	require.True(t, v.Contains("http://example.org/onto#Task_1"))
	require.False(t, v.Contains("http://example.org/onto#"))
	require.False(t, v.Contains("http://example.org/other#Task_1"))
	require.False(t, v.Contains("http://example.org/onto#a#b"))
}

package constants_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/pkg/constants"
)

func TestIsLocalName(t *testing.T) {
	valid := []string{"Project_Alpha", "P1", "Проект_1", "a.b-c", "x-", "_"}
	for _, s := range valid {
		require.True(t, constants.IsLocalName(s), s)
	}
	invalid := []string{"", ".a", "a.", "a b", "a#b", "a>b", "x}UNION{", "a/b", "-a"}
	for _, s := range invalid {
		require.False(t, constants.IsLocalName(s), s)
	}
}

func TestValidate_LocalNameTag(t *testing.T) {
	type dto struct {
		ID string `validate:"required,localname"`
	}
	require.NoError(t, constants.Validate.Struct(&dto{ID: "Project_Alpha"}))
	require.Error(t, constants.Validate.Struct(&dto{ID: "bad id"}))
	require.Error(t, constants.Validate.Struct(&dto{}))
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	slug := GenerateSlug("Ruches de Gand")
	assert.True(t, strings.HasPrefix(slug, "ruches-de-gand-"))
	assert.NotEqual(t, slug, GenerateSlug("Ruches de Gand"))

	assert.True(t, strings.HasPrefix(GenerateSlug("  Parcelle_Familiale "), "parcelle-familiale-"))
	assert.True(t, strings.HasPrefix(GenerateSlug(""), "projet-"))
}

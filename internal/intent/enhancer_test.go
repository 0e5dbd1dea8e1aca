package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhancePreservesOriginalText(t *testing.T) {
	for _, it := range All() {
		enhanced := Enhance("my question", it)
		assert.True(t, strings.HasPrefix(enhanced, "my question "), "intent %s", it)
		assert.Greater(t, len(enhanced), len("my question "))
	}
}

func TestEnhanceAppendsIntentHint(t *testing.T) {
	enhanced := Enhance("download profiles", DataAccess)
	assert.Contains(t, enhanced, "GDAC")
	assert.Contains(t, enhanced, "netCDF")

	enhanced = Enhance("floats near goa", LocationLookup)
	assert.Contains(t, enhanced, "map")
}

func TestEnhanceIsTotalOverUnknownIntents(t *testing.T) {
	// An undeclared intent value must still enhance, using the default hint.
	enhanced := Enhance("my question", Intent("bogus"))
	assert.True(t, strings.HasPrefix(enhanced, "my question "))
	assert.Equal(t, Enhance("my question", Default), enhanced)
}

func TestEveryIntentHasHint(t *testing.T) {
	for _, it := range All() {
		hint, ok := defaultHints[it]
		assert.True(t, ok, "intent %s has no hint", it)
		assert.NotEmpty(t, hint)
	}
}

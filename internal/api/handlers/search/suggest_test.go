package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScoreRanking(t *testing.T) {
	assert.Equal(t, 1.0, matchScore("The Go Programming Language", "the go"))
	assert.Equal(t, 0.6, matchScore("The Go Programming Language", "program"))
	assert.Equal(t, 0.3, matchScore("The Go Programming Language", "ogram"))
	assert.Equal(t, 0.0, matchScore("The Go Programming Language", "rust"))
}

func TestMatchScoreFolds(t *testing.T) {
	assert.Equal(t, 1.0, matchScore("Über Alles", "uber"))
	assert.Equal(t, 0.6, matchScore("Ana Núñez", "nunez"))
}

func TestMatchScoreEmpty(t *testing.T) {
	assert.Zero(t, matchScore("", "go"))
	assert.Zero(t, matchScore("Go", ""))
}

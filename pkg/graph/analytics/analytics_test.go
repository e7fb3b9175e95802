package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmpty(t *testing.T) {
	analysis, err := Analyze("")
	require.NoError(t, err)
	assert.Equal(t, Analysis{}, analysis)
}

func TestAnalyzeCounts(t *testing.T) {
	text := "This is a test sentence. It has multiple words."
	analysis, err := Analyze(text)
	require.NoError(t, err)

	assert.Equal(t, 9, analysis.WordCount)
	assert.Equal(t, len(text), analysis.CharCount)
	assert.Equal(t, 2, analysis.SentenceCount)
	assert.Greater(t, analysis.AvgWordLength, 0.0)
}

func TestAnalyzeSentimentRanges(t *testing.T) {
	analysis, err := Analyze("This is a wonderful, excellent result. Everything is great.")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, analysis.Sentiment, -1.0)
	assert.LessOrEqual(t, analysis.Sentiment, 1.0)
	assert.GreaterOrEqual(t, analysis.Subjectivity, 0.0)
	assert.LessOrEqual(t, analysis.Subjectivity, 1.0)
	assert.Greater(t, analysis.Sentiment, 0.0, "clearly positive text")
}

func TestAnalyzeNegativeSentiment(t *testing.T) {
	analysis, err := Analyze("This was a terrible, horrible failure. Everything went wrong.")
	require.NoError(t, err)
	assert.Less(t, analysis.Sentiment, 0.0)
}

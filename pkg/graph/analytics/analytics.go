// Package analytics computes aggregate scalar statistics over a normalized
// text: token/character/sentence counts, mean word length, and sentiment.
package analytics

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Analysis holds the summary statistics of one text. Sentiment is a
// polarity in [-1, 1]; Subjectivity is in [0, 1], reported as the
// non-neutral proportion of the scored text.
type Analysis struct {
	WordCount     int     `json:"word_count"`
	CharCount     int     `json:"char_count"`
	SentenceCount int     `json:"sentence_count"`
	AvgWordLength float64 `json:"avg_word_length"`
	Sentiment     float64 `json:"sentiment"`
	Subjectivity  float64 `json:"subjectivity"`
}

// Analyze computes statistics for text. Empty input yields a zero-valued
// Analysis without invoking the sentence model or the sentiment lexicon.
func Analyze(text string) (Analysis, error) {
	if text == "" {
		return Analysis{}, nil
	}

	words := strings.Fields(text)
	lengths := make([]float64, len(words))
	for i, w := range words {
		lengths[i] = float64(len(w))
	}

	// Segmentation only; tagging and entity extraction are not needed here.
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return Analysis{}, errors.Wrap(err, "segmenting text")
	}

	score := sentitext.PolarityScore(sentitext.Parse(text, lexicon.DefaultLexicon))
	subjectivity := 1 - score.Neutral
	if subjectivity < 0 {
		subjectivity = 0
	}
	if subjectivity > 1 {
		subjectivity = 1
	}

	return Analysis{
		WordCount:     len(words),
		CharCount:     len(text),
		SentenceCount: len(doc.Sentences()),
		AvgWordLength: stat.Mean(lengths, nil),
		Sentiment:     score.Compound,
		Subjectivity:  subjectivity,
	}, nil
}

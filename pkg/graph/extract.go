package graph

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultTopKeywords caps the keyword ranking when callers pass topK <= 0.
const DefaultTopKeywords = 50

const minKeywordLength = 4

var stopwords = mapset.NewSet[string](
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for",
	"with", "about", "against", "between", "into", "through", "during",
	"before", "after", "above", "below", "to", "from", "up", "down", "in",
	"out", "on", "off", "over", "under", "again", "further", "then",
	"once", "here", "there", "when", "where", "why", "how", "all", "any",
	"both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"can", "will", "just", "should", "now", "would", "could", "ought",
	"might", "must", "shall",
)

var verbTags = mapset.NewSet[string]("VB", "VBD", "VBG", "VBN", "VBP", "VBZ")

// ExtractKeywords ranks the annotation's tokens by frequency. Tokens are
// lower-cased; non-alphanumeric tokens, stopwords, and tokens shorter than
// four characters are discarded. Ordering is descending count with ties
// broken by first occurrence in the token stream, so the ranking is
// deterministic for a given annotation.
func ExtractKeywords(ann *Annotation, topK int) []string {
	if ann == nil || len(ann.Tokens) == 0 {
		return nil
	}
	if topK <= 0 {
		topK = DefaultTopKeywords
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	for i, tok := range ann.Tokens {
		word := strings.ToLower(tok.Text)
		if utf8.RuneCountInString(word) < minKeywordLength || !isAlphanumeric(word) || stopwords.Contains(word) {
			continue
		}
		if _, seen := counts[word]; !seen {
			firstSeen[word] = i
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > topK {
		order = order[:topK]
	}
	return order
}

// ExtractTriples walks the annotation's dependency roles: every
// nominal-subject token whose head is a verb pairs with that verb, and each
// direct-object or preposition-object child of the verb yields one triple.
// Triples whose subject equals their object are dropped; duplicates across
// repeated mentions are kept on purpose. This is a shallow best-effort
// heuristic: passive voice, coordination, and long-range relations are
// missed.
func ExtractTriples(ann *Annotation) []Triple {
	if ann == nil || len(ann.Tokens) == 0 {
		return nil
	}

	var triples []Triple
	for _, tok := range ann.Tokens {
		if tok.Role != RoleNominalSubject || tok.Head < 0 || tok.Head >= len(ann.Tokens) {
			continue
		}
		verb := ann.Tokens[tok.Head]
		if !verbTags.Contains(verb.Tag) {
			continue
		}
		for _, ci := range verb.Children {
			if ci < 0 || ci >= len(ann.Tokens) {
				continue
			}
			child := ann.Tokens[ci]
			if child.Role != RoleDirectObject && child.Role != RolePrepositionObject {
				continue
			}
			if tok.Text == "" || child.Text == "" || tok.Text == child.Text {
				continue
			}
			triples = append(triples, Triple{
				Subject:   tok.Text,
				Predicate: verb.Text,
				Object:    child.Text,
				Kind:      TripleKindSVO,
			})
		}
	}
	return triples
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

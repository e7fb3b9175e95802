package processors

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/athapong/pdfkg/pkg/graph"
)

var annotationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "pdfkg_nlp_annotation_duration_seconds",
		Help: "Time spent annotating text",
	},
	[]string{"stage"},
)

func init() {
	prometheus.MustRegister(annotationDuration)
}

// Entity surface texts outside these rune-length bounds are dropped.
const (
	minEntityLength = 2
	maxEntityLength = 50
)

var allowedCategories = mapset.NewSet[string](
	graph.CategoryPerson,
	graph.CategoryOrg,
	graph.CategoryGPE,
	graph.CategoryProduct,
	graph.CategoryEvent,
	graph.CategoryWorkOfArt,
)

// Pattern layer supplementing the model's named-entity output. The tagger's
// coverage is thin for organizations, events, and products, so surface
// patterns fill the gap the same way a custom gazetteer would.
var entityPatterns = map[*regexp.Regexp]string{
	regexp.MustCompile(`\b[A-Z][A-Za-z&]+(?: [A-Z][A-Za-z&]+)* (?:Inc|Corp|Corporation|Ltd|LLC|Company|Group|Bank|University|Institute|Agency)\b`): graph.CategoryOrg,
	regexp.MustCompile(`\b[A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)* (?:Conference|Summit|Festival|Games|Expo|Olympics)\b`):                               graph.CategoryEvent,
	regexp.MustCompile(`\b(?:iPhone|iPad|MacBook|Windows|Android|PlayStation|Xbox|Kindle)\b`):                                                      graph.CategoryProduct,
}

var (
	nounTags        = mapset.NewSet[string]("NN", "NNS", "NNP", "NNPS", "PRP")
	verbTags        = mapset.NewSet[string]("VB", "VBD", "VBG", "VBN", "VBP", "VBZ")
	prepositionTags = mapset.NewSet[string]("IN", "TO")
	sentenceEndTags = mapset.NewSet[string](".", "!", "?")
)

// NLPProcessor implements graph.Annotator on top of prose. The model data
// ships with the library, so there is no separate load step to memoize;
// each Annotate call runs one full tokenize/tag/NER pass and is therefore
// expensive for large texts.
type NLPProcessor struct {
	logger *logrus.Logger
}

// NewNLPProcessor creates a new prose-backed annotator.
func NewNLPProcessor() *NLPProcessor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &NLPProcessor{logger: logger}
}

// Annotate runs the model over text and derives the dependency roles the
// relationship extractor consumes. Empty text returns an empty annotation
// without touching the model.
func (p *NLPProcessor) Annotate(ctx context.Context, text string) (*graph.Annotation, error) {
	if text == "" {
		return &graph.Annotation{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(annotationDuration.WithLabelValues("annotate"))
	defer timer.ObserveDuration()

	doc, err := prose.NewDocument(text)
	if err != nil {
		p.logger.WithError(err).Error("model failed to annotate text")
		return nil, errors.Wrap(err, "creating prose document")
	}

	ann := &graph.Annotation{Text: text}

	for _, tok := range doc.Tokens() {
		ann.Tokens = append(ann.Tokens, graph.DepToken{
			Text: tok.Text,
			Tag:  tok.Tag,
			Head: -1,
		})
	}
	assignDependencyRoles(ann.Tokens)

	ann.Entities = p.extractEntities(text, doc)

	for _, sent := range doc.Sentences() {
		ann.Sentences = append(ann.Sentences, sent.Text)
	}

	p.logger.WithFields(logrus.Fields{
		"tokens":    len(ann.Tokens),
		"entities":  len(ann.Entities),
		"sentences": len(ann.Sentences),
	}).Info("annotation completed")

	return ann, nil
}

// extractEntities filters the model's entities through the category
// allow-list, locates their document-order offsets, and supplements them
// with the surface-pattern layer.
func (p *NLPProcessor) extractEntities(text string, doc *prose.Document) []graph.EntitySpan {
	spans := make([]graph.EntitySpan, 0)
	seen := make(map[[2]int]bool)

	cursor := 0
	for _, ent := range doc.Entities() {
		if !allowedCategories.Contains(ent.Label) {
			continue
		}
		start := indexFrom(text, ent.Text, cursor)
		if start < 0 {
			continue
		}
		end := start + len(ent.Text)
		cursor = end
		if !entityLengthOK(ent.Text) || seen[[2]int{start, end}] {
			continue
		}
		seen[[2]int{start, end}] = true
		spans = append(spans, graph.EntitySpan{
			Text:  ent.Text,
			Label: ent.Label,
			Start: start,
			End:   end,
		})
	}

	for pattern, category := range entityPatterns {
		for _, match := range pattern.FindAllStringIndex(text, -1) {
			surface := text[match[0]:match[1]]
			if !entityLengthOK(surface) || seen[[2]int{match[0], match[1]}] {
				continue
			}
			seen[[2]int{match[0], match[1]}] = true
			spans = append(spans, graph.EntitySpan{
				Text:  surface,
				Label: category,
				Start: match[0],
				End:   match[1],
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return spans
}

// indexFrom searches for sub starting at offset, falling back to a full
// scan when the running cursor has passed an out-of-order mention.
func indexFrom(text, sub string, offset int) int {
	if sub == "" {
		return -1
	}
	if offset < len(text) {
		if i := strings.Index(text[offset:], sub); i >= 0 {
			return offset + i
		}
	}
	return strings.Index(text, sub)
}

func entityLengthOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minEntityLength && n <= maxEntityLength
}

// assignDependencyRoles derives shallow grammatical roles from the POS tag
// sequence, one sentence segment at a time: the nearest noun before a verb
// becomes its nominal subject, nouns after it become direct objects, or
// preposition objects when a preposition intervenes. This is a best-effort
// stand-in for a dependency parse and deliberately ignores passive voice
// and coordination.
func assignDependencyRoles(tokens []graph.DepToken) {
	start := 0
	for i := range tokens {
		if sentenceEndTags.Contains(tokens[i].Tag) || sentenceEndTags.Contains(tokens[i].Text) {
			assignRolesInSegment(tokens, start, i)
			start = i + 1
		}
	}
	if start < len(tokens) {
		assignRolesInSegment(tokens, start, len(tokens))
	}
}

func assignRolesInSegment(tokens []graph.DepToken, start, end int) {
	for vi := start; vi < end; vi++ {
		if !verbTags.Contains(tokens[vi].Tag) {
			continue
		}

		// Nearest preceding noun, not crossing another verb.
		for si := vi - 1; si >= start; si-- {
			if verbTags.Contains(tokens[si].Tag) {
				break
			}
			if nounTags.Contains(tokens[si].Tag) {
				if tokens[si].Role == "" {
					tokens[si].Role = graph.RoleNominalSubject
					tokens[si].Head = vi
					tokens[vi].Children = append(tokens[vi].Children, si)
				}
				break
			}
		}

		// Following nouns up to the next verb; a preposition since the last
		// consumed noun flips the role from direct object to preposition
		// object.
		prepSeen := false
		for oi := vi + 1; oi < end; oi++ {
			if verbTags.Contains(tokens[oi].Tag) {
				break
			}
			if prepositionTags.Contains(tokens[oi].Tag) {
				prepSeen = true
				continue
			}
			if !nounTags.Contains(tokens[oi].Tag) {
				continue
			}
			if tokens[oi].Role == "" {
				role := graph.RoleDirectObject
				if prepSeen {
					role = graph.RolePrepositionObject
				}
				tokens[oi].Role = role
				tokens[oi].Head = vi
				tokens[vi].Children = append(tokens[vi].Children, oi)
			}
			prepSeen = false
		}
	}
}

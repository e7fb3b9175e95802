package graph

import "context"

// Entity categories kept by the extractor. Anything else the model reports
// is dropped, not remapped.
const (
	CategoryPerson    = "PERSON"
	CategoryOrg       = "ORG"
	CategoryGPE       = "GPE"
	CategoryProduct   = "PRODUCT"
	CategoryEvent     = "EVENT"
	CategoryWorkOfArt = "WORK_OF_ART"
)

// Grammatical roles assigned to tokens by the annotator.
const (
	RoleNominalSubject    = "nsubj"
	RoleDirectObject      = "dobj"
	RolePrepositionObject = "pobj"
)

// TripleKindSVO marks triples produced by the subject-verb-object walk.
const TripleKindSVO = "SVO"

// EntitySpan is a contiguous run of source text tagged with a semantic
// category. Start and End are byte offsets into the annotated text,
// Start < End.
type EntitySpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Triple is a (subject, predicate, object) relation heuristically derived
// from the dependency roles of an annotation. Subject and Object are never
// equal; duplicates across repeated mentions are kept.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Kind      string `json:"type"`
}

// DepToken is one token of a dependency-annotated sequence. Head is the
// index of the syntactic head token, -1 for roots. Children lists the
// indices of tokens headed by this one.
type DepToken struct {
	Text     string
	Tag      string // Penn Treebank part-of-speech tag
	Role     string // grammatical role relative to Head, "" when unassigned
	Head     int
	Children []int
}

// Annotation is the typed output of one NLP model pass: entity spans in
// document order, dependency-annotated tokens, and sentence texts.
type Annotation struct {
	Text      string
	Tokens    []DepToken
	Entities  []EntitySpan
	Sentences []string
}

// Annotator produces an Annotation for a text. Implementations are expected
// to be expensive per call; callers annotate at most once per distinct text
// revision and must not invoke the model for empty text.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}

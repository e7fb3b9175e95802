package processors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/pdfkg/pkg/graph"
)

func tok(text, tag string) graph.DepToken {
	return graph.DepToken{Text: text, Tag: tag, Head: -1}
}

func TestAssignDependencyRolesSVO(t *testing.T) {
	tokens := []graph.DepToken{
		tok("Alice", "NNP"), tok("met", "VBD"), tok("Bob", "NNP"), tok(".", "."),
	}
	assignDependencyRoles(tokens)

	assert.Equal(t, graph.RoleNominalSubject, tokens[0].Role)
	assert.Equal(t, 1, tokens[0].Head)
	assert.Equal(t, graph.RoleDirectObject, tokens[2].Role)
	assert.Equal(t, 1, tokens[2].Head)
	assert.ElementsMatch(t, []int{0, 2}, tokens[1].Children)
}

func TestAssignDependencyRolesPrepositionObject(t *testing.T) {
	tokens := []graph.DepToken{
		tok("Alice", "NNP"), tok("works", "VBZ"), tok("at", "IN"), tok("Acme", "NNP"), tok(".", "."),
	}
	assignDependencyRoles(tokens)

	assert.Equal(t, graph.RoleNominalSubject, tokens[0].Role)
	assert.Equal(t, graph.RolePrepositionObject, tokens[3].Role)
	assert.Equal(t, 1, tokens[3].Head)
}

func TestAssignDependencyRolesStopsAtSentenceBoundary(t *testing.T) {
	tokens := []graph.DepToken{
		tok("Alice", "NNP"), tok(".", "."),
		tok("ran", "VBD"), tok("home", "NN"), tok(".", "."),
	}
	assignDependencyRoles(tokens)

	assert.Equal(t, "", tokens[0].Role, "subject search must not cross sentence boundary")
	assert.Equal(t, graph.RoleDirectObject, tokens[3].Role)
}

func TestAssignDependencyRolesObjectScanStopsAtNextVerb(t *testing.T) {
	tokens := []graph.DepToken{
		tok("Alice", "NNP"), tok("met", "VBD"), tok("Bob", "NNP"),
		tok("who", "WP"), tok("knows", "VBZ"), tok("Carol", "NNP"), tok(".", "."),
	}
	assignDependencyRoles(tokens)

	assert.Equal(t, graph.RoleDirectObject, tokens[2].Role)
	assert.Equal(t, 1, tokens[2].Head)
	assert.Equal(t, graph.RoleDirectObject, tokens[5].Role)
	assert.Equal(t, 4, tokens[5].Head, "Carol belongs to the second verb")
}

func TestAnnotateEmptyTextSkipsModel(t *testing.T) {
	p := NewNLPProcessor()
	ann, err := p.Annotate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, ann.Tokens)
	assert.Empty(t, ann.Entities)
	assert.Empty(t, ann.Sentences)
}

func TestAnnotateProducesTriplableRoles(t *testing.T) {
	p := NewNLPProcessor()
	ann, err := p.Annotate(context.Background(), "Alice met Bob. Alice works at Acme.")
	require.NoError(t, err)

	require.NotEmpty(t, ann.Tokens)
	assert.Len(t, ann.Sentences, 2)

	subjects := 0
	for _, tk := range ann.Tokens {
		if tk.Role == graph.RoleNominalSubject {
			subjects++
			require.GreaterOrEqual(t, tk.Head, 0)
			require.Less(t, tk.Head, len(ann.Tokens))
		}
	}
	assert.Greater(t, subjects, 0)

	triples := graph.ExtractTriples(ann)
	assert.NotEmpty(t, triples)
	for _, tr := range triples {
		assert.NotEqual(t, tr.Subject, tr.Object)
		assert.Equal(t, graph.TripleKindSVO, tr.Kind)
	}
}

func TestAnnotateEntityInvariants(t *testing.T) {
	p := NewNLPProcessor()
	text := "Barack Obama visited Berlin with Angela Merkel during the Global Climate Summit."
	ann, err := p.Annotate(context.Background(), text)
	require.NoError(t, err)

	last := -1
	for _, span := range ann.Entities {
		assert.Less(t, span.Start, span.End)
		assert.LessOrEqual(t, span.End, len(text))
		assert.Equal(t, span.Text, text[span.Start:span.End])
		assert.True(t, allowedCategories.Contains(span.Label), "category %q", span.Label)
		assert.GreaterOrEqual(t, span.Start, last, "document order")
		last = span.Start
	}
}

func TestEntityPatternLayer(t *testing.T) {
	p := NewNLPProcessor()
	text := "The merger between Initech Corp and Globex Company was announced at the Vienna Expo."
	ann, err := p.Annotate(context.Background(), text)
	require.NoError(t, err)

	byLabel := make(map[string][]string)
	for _, span := range ann.Entities {
		byLabel[span.Label] = append(byLabel[span.Label], span.Text)
	}
	assert.Contains(t, byLabel[graph.CategoryOrg], "Initech Corp")
	assert.Contains(t, byLabel[graph.CategoryOrg], "Globex Company")
	assert.Contains(t, byLabel[graph.CategoryEvent], "Vienna Expo")
}

func TestEntityLengthBounds(t *testing.T) {
	assert.False(t, entityLengthOK("x"))
	assert.True(t, entityLengthOK("ab"))
	assert.True(t, entityLengthOK("a perfectly ordinary entity name"))
	assert.False(t, entityLengthOK("this surface text is much longer than fifty characters in total"))
}

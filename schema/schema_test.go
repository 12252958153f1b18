package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldml/schema"
)

type named struct {
	name string
	text string
}

func (a named) Name() string { return a.name }

type merging struct {
	name  string
	texts []string
}

func (a merging) Name() string { return a.name }

func (a merging) Merge(other schema.Annotation) schema.Annotation {
	if o, ok := other.(merging); ok {
		a.texts = append(a.texts, o.texts...)
	}
	return a
}

func TestMergeAnnotations(t *testing.T) {
	t.Run("Distinct", func(t *testing.T) {
		merged := schema.MergeAnnotations(named{name: "a"}, named{name: "b"})
		assert.Len(t, merged, 2)
	})

	t.Run("LastWins", func(t *testing.T) {
		merged := schema.MergeAnnotations(
			named{name: "a", text: "first"},
			named{name: "a", text: "second"},
		)
		require.Len(t, merged, 1)
		assert.Equal(t, "second", merged["a"].(named).text)
	})

	t.Run("Merger", func(t *testing.T) {
		merged := schema.MergeAnnotations(
			merging{name: "a", texts: []string{"x"}},
			merging{name: "a", texts: []string{"y"}},
		)
		require.Len(t, merged, 1)
		assert.Equal(t, []string{"x", "y"}, merged["a"].(merging).texts)
	})
}

func TestComment(t *testing.T) {
	c := schema.Comment("users table")
	assert.Equal(t, "Comment", c.Name())
	assert.Equal(t, "users table", c.Text)
}

package schema

// Annotation is used to attach arbitrary metadata to schema objects.
// Annotations are carried by entity definitions and read later by the
// binding and statement-generation layers.
//
// Multiple annotations with the same Name are combined using the
// Merger interface when implemented, or replaced otherwise.
type Annotation interface {
	// Name defines the name of the annotation to be retrieved by the
	// consuming layer.
	Name() string
}

// Merger wraps the single Merge function that allows an annotation to
// be merged with another annotation of the same type.
type Merger interface {
	Merge(Annotation) Annotation
}

// CommentAnnotation is a builtin annotation for attaching comments to
// schema objects.
type CommentAnnotation struct {
	Text string // Comment text.
}

// Name implements the Annotation interface.
func (CommentAnnotation) Name() string {
	return "Comment"
}

// Comment is a helper for creating a comment annotation.
func Comment(text string) *CommentAnnotation {
	return &CommentAnnotation{Text: text}
}

// MergeAnnotations merges the list of annotations into a name-keyed map.
// Annotations that implement the Merger interface are merged in order of
// appearance; later annotations replace earlier ones otherwise.
func MergeAnnotations(annotations ...Annotation) map[string]Annotation {
	merged := make(map[string]Annotation, len(annotations))
	for _, ant := range annotations {
		prev, ok := merged[ant.Name()]
		if !ok {
			merged[ant.Name()] = ant
			continue
		}
		if m, ok := prev.(Merger); ok {
			merged[ant.Name()] = m.Merge(ant)
		} else {
			merged[ant.Name()] = ant
		}
	}
	return merged
}

var _ Annotation = (*CommentAnnotation)(nil)

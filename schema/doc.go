// Package schema defines the annotation contracts shared by the sqldml
// packages.
//
// An annotation is an immutable piece of metadata attached to an entity
// definition. The root sqldml package provides the statement-override
// annotation; consuming layers retrieve annotations by name:
//
//	ants := schema.MergeAnnotations(
//	    sqldml.Insert("INSERT INTO users (name, id) VALUES (?, ?)"),
//	    sqldml.Insert("INSERT INTO user_details (bio, id) VALUES (?, ?)",
//	        sqldml.Table("user_details"),
//	    ),
//	)
//
// Annotations of the same name are combined through the [Merger]
// interface when implemented.
package schema

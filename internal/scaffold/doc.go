// Package scaffold creates the two descriptor files of an entity, a marker
// file and a metadata document, from category templates. Existing files are
// never touched. The templates are data (templates/descriptors.yaml, embedded)
// validated against an embedded JSON Schema, so adding a category needs no
// code change.
package scaffold

// Package entity derives an entity's directory and canonical name from a
// sub-manifest entry. The entity is the directory holding the referenced
// file; its name is that directory's last path segment.
package entity

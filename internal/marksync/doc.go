// Package marksync runs a full descriptor sync for one project tree.
//
// It reads <root>/.mark/mark.mstp, routes each entry to the agent or tool
// handler by suffix, scaffolds the descriptors of every entity the
// sub-manifests reference, and writes a summary to <root>/.mark/cache/sync.log.
// Entries are processed one at a time in file order.
package marksync

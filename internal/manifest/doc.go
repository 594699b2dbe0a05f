// Package manifest reads .mark manifests: plain text files whose significant
// lines have the form "- <relative-path>". The root manifest (mark.mstp) lists
// sub-manifests; agent and tool sub-manifests list entity references. Entries
// are routed to a Category by file-name suffix.
package manifest

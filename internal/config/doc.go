// Package config manages settings for the sync run. User-level settings live
// at ~/.mark/config.yaml; a project may override them with
// <root>/.mark/config.yaml. Environment variables prefixed with MARK_ win over
// both files.
package config

// config/overlay.go
package config

import "gopkg.in/yaml.v3"

// Overlay decodes a user rules document on top of r. Lists present in the
// document replace the defaults, map entries are merged, anything absent keeps
// its default.
func Overlay(r *Rules, doc []byte) error {
	return yaml.Unmarshal(doc, r)
}

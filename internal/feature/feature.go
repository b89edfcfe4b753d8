// Package feature decides which optional rendering subsystems a document
// needs, so unused script bundles are never loaded.
package feature

import "strings"

// Set records the optional rendering subsystems a document requires.
type Set struct {
	Mermaid bool `json:"mermaid"`
	Math    bool `json:"math"`
}

// Detect performs a coarse presence scan of the document text. The scan is
// deliberately conservative: a literal $ in prose triggers the math flag, but
// a false positive only costs an asset load while a false negative would
// leave content unrendered. Disambiguation of real math happens in the
// downstream delimiter matching, not here.
func Detect(text string) Set {
	return Set{
		Mermaid: strings.Contains(text, "```mermaid"),
		Math: strings.Contains(text, "$") ||
			strings.Contains(text, `\[`) ||
			strings.Contains(text, `\(`),
	}
}

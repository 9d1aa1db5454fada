package completion

import (
	"fmt"
	"strings"
)

// FallbackMarker ends every fallback result so callers and readers can tell a
// simulated response from real model output.
const FallbackMarker = "[Simulated response: the language model was unavailable for this execution.]"

// Fallback builds the deterministic stand-in result for a template whose
// execution could not reach the model. reason is one of the executor's
// fallback reasons.
func Fallback(templateName, reason string) string {
	name := strings.ToLower(templateName)

	var body string
	switch {
	case strings.Contains(name, "code") || strings.Contains(name, "review"):
		body = "Code review summary\n\n" +
			"1. Structure: the code is organized into clear units.\n" +
			"2. Naming: identifiers describe their purpose.\n" +
			"3. Error handling: check that every failure path is covered.\n" +
			"4. Tests: add cases for edge conditions."
	case strings.Contains(name, "blog"):
		body = "Blog post draft\n\n" +
			"Introduction: set up the topic and why it matters to the reader.\n" +
			"Body: cover the key points with examples.\n" +
			"Conclusion: summarize and close with a call to action."
	case strings.Contains(name, "write") || strings.Contains(name, "content"):
		body = "Content draft\n\n" +
			"An opening that states the main idea, supporting paragraphs that develop it, " +
			"and a closing that ties the piece together."
	default:
		body = fmt.Sprintf("Response for %q\n\nThe prompt was prepared successfully. "+
			"Run it again once a model provider is available to get real output.", templateName)
	}

	return fmt.Sprintf("%s\n\n%s (reason: %s)", body, FallbackMarker, reason)
}

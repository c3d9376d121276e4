// Package describe produces the short "About" blurb printed above results.
package describe

import (
	"fmt"
	"strings"
)

var known = map[string]string{
	"flutter":    "Flutter is an open-source UI software development kit created by Google, used for building natively compiled applications for mobile, web, and desktop from a single codebase.",
	"python":     "Python is a high-level, interpreted programming language known for its simplicity and versatility, widely used in web development, data science, and automation.",
	"javascript": "JavaScript is a programming language primarily used for creating interactive web applications and dynamic content on websites.",
}

// Describe returns a canned description for well-known queries and a
// generic sentence for everything else.
func Describe(query string) string {
	lower := strings.ToLower(query)
	if text, ok := known[lower]; ok {
		return text
	}
	return fmt.Sprintf("Search query '%s' may refer to information, services, or content related to %s. Explore the results below for more details.", query, lower)
}

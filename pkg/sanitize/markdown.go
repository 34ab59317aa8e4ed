// Package sanitize cleans player-authored markdown before it enters match
// state. The transform is deliberately minimal and stable: archived match
// logs replay through the same function, so its output can never change
// shape between versions.
package sanitize

import "regexp"

// MaxContentLength caps any single text field in match state.
const MaxContentLength = 10000

var scriptTag = regexp.MustCompile(`(?is)<script.*?>.*?</script>`)

// Markdown strips script tags with their content and enforces the length cap.
func Markdown(input string) string {
	out := scriptTag.ReplaceAllString(input, "")
	if runes := []rune(out); len(runes) > MaxContentLength {
		out = string(runes[:MaxContentLength])
	}
	return out
}

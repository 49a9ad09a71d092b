package render

import "strings"

// SplitLabel breaks a prize name into two lines by word count, the first line
// taking the larger half.
func SplitLabel(name string) (string, string) {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "", ""
	}
	half := (len(words) + 1) / 2
	return strings.Join(words[:half], " "), strings.Join(words[half:], " ")
}

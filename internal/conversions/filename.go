package conversions

import "strings"

const outputSuffix = "_cmyk.tiff"

// OutputFilename derives the TIFF name from an upload name: the base name
// up to its first dot, followed by "_cmyk.tiff". Both slash styles count as
// path separators.
func OutputFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	stem, _, _ := strings.Cut(name, ".")
	return stem + outputSuffix
}

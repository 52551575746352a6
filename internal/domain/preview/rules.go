// internal/domain/preview/rules.go
package preview

import "fmt"

// Formatter builds an image filename from the parsed number
type Formatter func(n Number) string

// CategoryRule is the directory and filename convention for one category
type CategoryRule struct {
	Directory string
	Format    Formatter
}

// PaddedFormatter renders "<prefix>_<n zero-padded to width>.avif"
func PaddedFormatter(prefix string, width int) Formatter {
	return func(n Number) string {
		return fmt.Sprintf("%s_%s.avif", prefix, n.Pad(width))
	}
}

// IndexFormatter looks the number up in a fixed filename index and falls
// back to "<n zero-padded to 2>.avif"
func IndexFormatter(index map[int]string) Formatter {
	return func(n Number) string {
		if v, ok := n.Int(); ok {
			if filename, found := index[v]; found {
				return filename
			}
		}
		return n.Pad(2) + ".avif"
	}
}

// rawFormatter is the unknown-category fallback. The suffix is used as
// typed, without padding, unlike every known category.
func rawFormatter(n Number) string {
	return n.Raw + ".avif"
}

// DefaultRules returns the category table of the storefront
func DefaultRules(paintings map[int]string) map[string]CategoryRule {
	return map[string]CategoryRule{
		"AMONG-US":             {Directory: "Among Us", Format: PaddedFormatter("AMONG", 2)},
		"DC-HEROES":            {Directory: "DC Heroes", Format: PaddedFormatter("HEROIS", 3)},
		"LEAGUE-OF-LEGENDS":    {Directory: "League of Legends", Format: PaddedFormatter("LOL", 2)},
		"MORTAL-KOMBAT":        {Directory: "Mortal Kombat", Format: PaddedFormatter("MORTAL", 2)},
		"PAINTINGS":            {Directory: "Paintings", Format: IndexFormatter(paintings)},
		"MOTIVATIONAL":         {Directory: "Motavational", Format: PaddedFormatter("MOTIVATIONAL", 3)},
		"COLLAGE":              {Directory: "Collage", Format: PaddedFormatter("COLAGEM", 2)},
		"DIGITAL-ILLUSTRATION": {Directory: "Digital Illustration", Format: PaddedFormatter("ID", 3)},
		"DOODLE-ART":           {Directory: "Doodle Art", Format: PaddedFormatter("DOODLE", 2)},
		"ESOTERIC":             {Directory: "Esoteric", Format: PaddedFormatter("ESOTERICAS", 3)},
		"SPACE":                {Directory: "Space", Format: PaddedFormatter("SPACE", 3)},
		"RELIGION":             {Directory: "Religion", Format: PaddedFormatter("FTH", 3)},
	}
}

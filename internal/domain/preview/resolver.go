// internal/domain/preview/resolver.go
package preview

import (
	"sort"
	"strings"
)

// DefaultURLPrefix is where the asset store serves product images
const DefaultURLPrefix = "/Images"

// Resolver maps item codes to image descriptors. It never touches the
// asset store; a missing file is the renderer's 404.
type Resolver struct {
	urlPrefix string
	rules     map[string]CategoryRule
}

// NewResolver creates a resolver with the default category table
func NewResolver(urlPrefix string) *Resolver {
	return NewResolverWithRules(urlPrefix, DefaultRules(DefaultPaintingIndex()))
}

// NewResolverWithRules creates a resolver with a custom category table
func NewResolverWithRules(urlPrefix string, rules map[string]CategoryRule) *Resolver {
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &Resolver{
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		rules:     rules,
	}
}

// SplitCode separates an item code into its category key and number
// segment. Categories may contain hyphens, so only the last segment is
// the number.
func SplitCode(code string) (category, number string, ok bool) {
	parts := strings.Split(code, "-")
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], "-"), parts[len(parts)-1], true
}

// Resolve maps an item code to its preview image
func (r *Resolver) Resolve(code string) (*ImageDescriptor, error) {
	category, number, ok := SplitCode(code)
	if !ok {
		return nil, ErrNotFound
	}

	directory := category
	format := Formatter(rawFormatter)
	if rule, known := r.rules[category]; known {
		directory = rule.Directory
		format = rule.Format
	}

	filename := format(ParseNumber(number))

	return &ImageDescriptor{
		Path:       r.urlPrefix + "/" + directory + "/" + filename,
		AltText:    code + " - Preview",
		SourceCode: code,
	}, nil
}

// ResolveAll resolves every code, keeping only the ones that resolve.
// The second result lists the codes that did not.
func (r *Resolver) ResolveAll(codes []string) ([]ImageDescriptor, []string) {
	images := make([]ImageDescriptor, 0, len(codes))
	var missing []string
	for _, code := range codes {
		image, err := r.Resolve(code)
		if err != nil {
			missing = append(missing, code)
			continue
		}
		images = append(images, *image)
	}
	return images, missing
}

// Categories lists the known categories sorted by key
func (r *Resolver) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(r.rules))
	for key, rule := range r.rules {
		example := key + "-001"
		infos = append(infos, CategoryInfo{
			Key:       key,
			Directory: rule.Directory,
			Example:   example,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

// HasCategory reports whether the category key has a known rule
func (r *Resolver) HasCategory(key string) bool {
	_, ok := r.rules[key]
	return ok
}

package shared

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the column size of every slug field
const MaxSlugLength = 100

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ReservedSlugs collide with fixed route segments and never become a slug as is
var ReservedSlugs = []string{"add", "exec", "all", "api", "autocomplete"}

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
	validSlug        = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
)

// Slugify converts s into a URL-safe identifier: accents are stripped,
// non-ASCII and punctuation removed, whitespace and hyphen runs collapsed
// into a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	slug := strings.ToLower(strings.TrimSpace(b.String()))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}

// IsValidSlug reports whether s is already in canonical slug form
func IsValidSlug(s string) bool {
	return len(s) <= MaxSlugLength && validSlug.MatchString(s)
}

// SlugExistsFunc reports whether slug is already taken
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// SlugGenerator produces slugs that are unique within one table
type SlugGenerator struct {
	reserved    map[string]struct{}
	suffixLen   int
	maxAttempts int
	random      func(n int) (string, error)
}

// SlugGeneratorOption configures a SlugGenerator
type SlugGeneratorOption func(*SlugGenerator)

// WithMaxAttempts bounds the number of uniqueness checks
func WithMaxAttempts(n int) SlugGeneratorOption {
	return func(g *SlugGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithRandomSource replaces the random suffix source (tests)
func WithRandomSource(fn func(n int) (string, error)) SlugGeneratorOption {
	return func(g *SlugGenerator) {
		g.random = fn
	}
}

// NewSlugGenerator creates a generator with the default reserved words
func NewSlugGenerator(opts ...SlugGeneratorOption) *SlugGenerator {
	g := &SlugGenerator{
		reserved:    make(map[string]struct{}, len(ReservedSlugs)),
		suffixLen:   4,
		maxAttempts: 16,
		random:      RandomSlugString,
	}
	for _, word := range ReservedSlugs {
		g.reserved[word] = struct{}{}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a slug derived from source that is not reserved, not in
// restricted and for which exists reports false. Every collision appends
// another random suffix to the current candidate.
func (g *SlugGenerator) Generate(ctx context.Context, source string, exists SlugExistsFunc, restricted ...string) (string, error) {
	slug := Slugify(source)
	if slug == "" {
		r, err := g.random(8)
		if err != nil {
			return "", err
		}
		slug = r
	}

	if g.isRestricted(slug, restricted) {
		next, err := g.withSuffix(slug)
		if err != nil {
			return "", err
		}
		slug = next
	}

	slug = truncateSlug(slug, MaxSlugLength)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		next, err := g.withSuffix(slug)
		if err != nil {
			return "", err
		}
		slug = next
	}

	return "", NewDomainError("SLUG_GENERATION_FAILED", "Could not generate a unique slug for \""+source+"\"")
}

func (g *SlugGenerator) isRestricted(slug string, restricted []string) bool {
	if _, ok := g.reserved[slug]; ok {
		return true
	}
	return slices.Contains(restricted, slug)
}

// IsReservedSlug reports whether an explicitly chosen slug is one of
// ReservedSlugs or restricted
func IsReservedSlug(slug string, restricted ...string) bool {
	return slices.Contains(ReservedSlugs, slug) || slices.Contains(restricted, slug)
}

func (g *SlugGenerator) withSuffix(slug string) (string, error) {
	suffix, err := g.random(g.suffixLen)
	if err != nil {
		return "", err
	}
	base := truncateSlug(slug, MaxSlugLength-len(suffix)-1)
	return base + "-" + suffix, nil
}

func truncateSlug(slug string, max int) string {
	if len(slug) <= max {
		return slug
	}
	return strings.TrimRight(slug[:max], "-_")
}

// RandomSlugString returns n random lowercase alphanumerics
func RandomSlugString(n int) (string, error) {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(slugAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = slugAlphabet[idx.Int64()]
	}
	return string(out), nil
}

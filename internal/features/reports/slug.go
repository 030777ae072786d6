package reports

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^\w-]+`)
	hyphenRun     = regexp.MustCompile(`--+`)
)

// Slugify turns a title into its URL form. The ampersand is spelled
// out before stripping so "Grants & Funding" becomes
// "grants-and-funding" rather than "grants-funding".
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = strings.ReplaceAll(slug, "&", "-and-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return slug
}

// SlugProber answers whether a slug is already taken. Satisfied by
// *Repository; an interface so the probe loop can be tested without a
// collection behind it.
type SlugProber interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// AllocateSlug probes for a free slug: the bare base first, then
// base-1, base-2 and so on. The unique index on the slug field is the
// real arbiter; a concurrent insert that wins the race surfaces as
// ErrSlugTaken from Create and the caller re-allocates.
func AllocateSlug(ctx context.Context, store SlugProber, title string) (string, error) {
	base := Slugify(title)
	slug := base
	for suffix := 1; ; suffix++ {
		exists, err := store.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func (r *Repository) AllocateSlug(ctx context.Context, title string) (string, error) {
	return AllocateSlug(ctx, r, title)
}

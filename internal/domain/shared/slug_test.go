package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceSource(values ...string) func(n int) (string, error) {
	i := 0
	return func(n int) (string, error) {
		if i >= len(values) {
			return strings.Repeat("z", n), nil
		}
		v := values[i]
		i++
		return v, nil
	}
}

func takenSet(slugs ...string) (SlugExistsFunc, *int) {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	calls := 0
	return func(_ context.Context, slug string) (bool, error) {
		calls++
		return set[slug], nil
	}, &calls
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corporation", "acme-corporation"},
		{"  Hello,   World!  ", "hello-world"},
		{"Zażółć gęślą jaźń", "zazoc-gesla-jazn"},
		{"Crème brûlée", "creme-brulee"},
		{"already-a-slug", "already-a-slug"},
		{"multiple---hyphens -- here", "multiple-hyphens-here"},
		{"_under_score_", "under_score"},
		{"!!!", ""},
		{"Jan Kowalski", "jan-kowalski"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("acme"))
	assert.True(t, IsValidSlug("acme-corp-2024"))
	assert.True(t, IsValidSlug("under_score"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Acme"))
	assert.False(t, IsValidSlug("-acme"))
	assert.False(t, IsValidSlug("acme corp"))
	assert.False(t, IsValidSlug(strings.Repeat("a", MaxSlugLength+1)))
}

func TestSlugGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns slugified source when free", func(t *testing.T) {
		exists, calls := takenSet()
		g := NewSlugGenerator()

		slug, err := g.Generate(ctx, "Acme Corp", exists)
		require.NoError(t, err)
		assert.Equal(t, "acme-corp", slug)
		assert.Equal(t, 1, *calls)
	})

	t.Run("appends suffix on collision", func(t *testing.T) {
		exists, _ := takenSet("acme")
		g := NewSlugGenerator(WithRandomSource(sequenceSource("x1y2")))

		slug, err := g.Generate(ctx, "Acme", exists)
		require.NoError(t, err)
		assert.Equal(t, "acme-x1y2", slug)
	})

	t.Run("keeps appending while suffixed slug collides", func(t *testing.T) {
		exists, calls := takenSet("acme", "acme-aaaa", "acme-aaaa-bbbb")
		g := NewSlugGenerator(WithRandomSource(sequenceSource("aaaa", "bbbb", "cccc")))

		slug, err := g.Generate(ctx, "Acme", exists)
		require.NoError(t, err)
		assert.Equal(t, "acme-aaaa-bbbb-cccc", slug)
		assert.Equal(t, 4, *calls)
	})

	t.Run("unique after N collisions", func(t *testing.T) {
		taken := map[string]bool{}
		exists := func(_ context.Context, slug string) (bool, error) {
			return taken[slug], nil
		}
		g := NewSlugGenerator()

		for i := 0; i < 50; i++ {
			slug, err := g.Generate(ctx, "Same Name", exists)
			require.NoError(t, err)
			require.False(t, taken[slug], "slug %s generated twice", slug)
			require.LessOrEqual(t, len(slug), MaxSlugLength)
			taken[slug] = true
		}
		assert.True(t, taken["same-name"])
	})

	t.Run("reserved words always get a suffix", func(t *testing.T) {
		for _, word := range ReservedSlugs {
			exists, _ := takenSet()
			g := NewSlugGenerator(WithRandomSource(sequenceSource("r4nd")))

			slug, err := g.Generate(ctx, strings.ToUpper(word), exists)
			require.NoError(t, err)
			assert.Equal(t, word+"-r4nd", slug)
		}
	})

	t.Run("restricted words passed per call", func(t *testing.T) {
		exists, _ := takenSet()
		g := NewSlugGenerator(WithRandomSource(sequenceSource("abcd")))

		slug, err := g.Generate(ctx, "New", exists, "new")
		require.NoError(t, err)
		assert.Equal(t, "new-abcd", slug)
	})

	t.Run("empty source falls back to random slug", func(t *testing.T) {
		exists, _ := takenSet()
		g := NewSlugGenerator(WithRandomSource(sequenceSource("k2j4h6g8")))

		slug, err := g.Generate(ctx, "???", exists)
		require.NoError(t, err)
		assert.Equal(t, "k2j4h6g8", slug)
	})

	t.Run("long source is truncated", func(t *testing.T) {
		exists, _ := takenSet()
		g := NewSlugGenerator()

		slug, err := g.Generate(ctx, strings.Repeat("word ", 60), exists)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(slug), MaxSlugLength)
		assert.False(t, strings.HasSuffix(slug, "-"))
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		exists := func(_ context.Context, _ string) (bool, error) { return true, nil }
		g := NewSlugGenerator(WithMaxAttempts(3))

		_, err := g.Generate(ctx, "Acme", exists)
		require.Error(t, err)
		var domainErr *DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SLUG_GENERATION_FAILED", domainErr.Code)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		boom := fmt.Errorf("db down")
		exists := func(_ context.Context, _ string) (bool, error) { return false, boom }
		g := NewSlugGenerator()

		_, err := g.Generate(ctx, "Acme", exists)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		exists, _ := takenSet()

		_, err := NewSlugGenerator().Generate(cctx, "Acme", exists)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRandomSlugString(t *testing.T) {
	s, err := RandomSlugString(12)
	require.NoError(t, err)
	assert.Len(t, s, 12)
	for _, r := range s {
		assert.Contains(t, slugAlphabet, string(r))
	}
}

func TestIsReservedSlug(t *testing.T) {
	assert.True(t, IsReservedSlug("autocomplete"))
	assert.True(t, IsReservedSlug("api", "me"))
	assert.True(t, IsReservedSlug("me", "me"))
	assert.False(t, IsReservedSlug("me"))
	assert.False(t, IsReservedSlug("acme", "me"))
}

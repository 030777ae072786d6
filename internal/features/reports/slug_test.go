package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProber pretends the given slugs are already persisted
type fakeProber struct {
	taken  map[string]bool
	probes []string
}

func (f *fakeProber) SlugExists(_ context.Context, slug string) (bool, error) {
	f.probes = append(f.probes, slug)
	return f.taken[slug], nil
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Failed Experiment", "my-failed-experiment"},
		{"  Spaced   Out  Title  ", "spaced-out-title"},
		{"Grants & Funding", "grants-and-funding"},
		{"What?! Happened... (again)", "what-happened-again"},
		{"UPPER lower MiXeD", "upper-lower-mixed"},
		{"already-slugged-title", "already-slugged-title"},
		{"trailing punctuation!!!", "trailing-punctuation"},
		{"100% reproducible", "100-reproducible"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestSlugifyAmpersandSpelledOut(t *testing.T) {
	// The ampersand expands before stripping, so it survives as "and"
	// instead of collapsing the words around it.
	require.Equal(t, "trials-and-errors", Slugify("Trials & Errors"))
	require.Equal(t, "a-and-b-and-c", Slugify("A & B & C"))
}

func TestSlugifyDegenerateTitles(t *testing.T) {
	require.Equal(t, "", Slugify("???"))
	require.Equal(t, "", Slugify("   "))
	require.Equal(t, "", Slugify(""))
}

func TestAllocateSlugFreeBase(t *testing.T) {
	prober := &fakeProber{taken: map[string]bool{}}

	slug, err := AllocateSlug(context.Background(), prober, "Lost a sample batch")
	require.NoError(t, err)
	require.Equal(t, "lost-a-sample-batch", slug)
}

func TestAllocateSlugCollisionTakesNextSuffix(t *testing.T) {
	// A second report with the same title lands on base-1
	prober := &fakeProber{taken: map[string]bool{"lost-a-sample-batch": true}}

	slug, err := AllocateSlug(context.Background(), prober, "Lost a sample batch")
	require.NoError(t, err)
	require.Equal(t, "lost-a-sample-batch-1", slug)

	// And a third on base-2
	prober.taken["lost-a-sample-batch-1"] = true
	slug, err = AllocateSlug(context.Background(), prober, "Lost a sample batch")
	require.NoError(t, err)
	require.Equal(t, "lost-a-sample-batch-2", slug)
}

func TestAllocateSlugEmptyBase(t *testing.T) {
	// An all-punctuation title probes "", "-1", "-2", ... without crashing
	prober := &fakeProber{taken: map[string]bool{"": true, "-1": true}}

	slug, err := AllocateSlug(context.Background(), prober, "???")
	require.NoError(t, err)
	require.Equal(t, "-2", slug)
	require.Equal(t, []string{"", "-1", "-2"}, prober.probes)
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"My Failed Experiment", "Grants & Funding", "What?! Happened"}
	for _, title := range titles {
		once := Slugify(title)
		require.Equal(t, once, Slugify(once))
	}
}

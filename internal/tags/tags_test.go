package tags

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name
	}
	return out
}

func TestOrder(t *testing.T) {
	tests := map[string]struct {
		input          []string
		want           []string
		wantDropped    []string
		wantDuplicates []string
	}{
		"semver precedence not lexical order": {
			input: []string{"v0.10.0", "v0.2.0", "v0.9.1", "v1.0.0"},
			want:  []string{"v0.2.0", "v0.9.1", "v0.10.0", "v1.0.0", Head},
		},
		"prerelease sorts before release": {
			input: []string{"v1.0.0", "v1.0.0-rc.1", "v1.0.0-alpha"},
			want:  []string{"v1.0.0-alpha", "v1.0.0-rc.1", "v1.0.0", Head},
		},
		"unparseable tags are excluded": {
			input:       []string{"v1.0", "vnext", "v0.1.0", "version-2"},
			want:        []string{"v0.1.0", Head},
			wantDropped: []string{"v1.0", "vnext", "version-2"},
		},
		"prefix is optional": {
			input: []string{"0.3.0", "v0.2.0"},
			want:  []string{"v0.2.0", "0.3.0", Head},
		},
		"literal HEAD candidate is not duplicated": {
			input: []string{Head, "v0.1.0"},
			want:  []string{"v0.1.0", Head},
		},
		"build metadata collapses to one tag": {
			input:          []string{"v1.0.0", "v1.0.0+b2", "v1.0.0-rc.1"},
			want:           []string{"v1.0.0-rc.1", "v1.0.0", Head},
			wantDuplicates: []string{"v1.0.0+b2"},
		},
		"same version with and without prefix": {
			input:          []string{"0.2.0", "v0.2.0", "v0.1.0"},
			want:           []string{"v0.1.0", "0.2.0", Head},
			wantDuplicates: []string{"v0.2.0"},
		},
		"no tags leaves only HEAD": {
			input: nil,
			want:  []string{Head},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, diag := Order(tt.input)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, tt.wantDropped, diag.Dropped)
			assert.Equal(t, tt.wantDuplicates, diag.Duplicates)
		})
	}
}

func TestOrder_StrictAscending(t *testing.T) {
	got, _ := Order([]string{"v2.0.0", "v0.0.1", "v1.2.3", "v1.2.0", "v1.10.0", "v0.0.2", "v1.2.3+build.5"})

	require.NotEmpty(t, got)
	assert.True(t, got[len(got)-1].IsHead())
	for i := 1; i < len(got)-1; i++ {
		assert.True(t, Less(got[i-1], got[i]), "%s should sort before %s", got[i-1].Name, got[i].Name)
	}
}

func TestLess_HeadIsGreatest(t *testing.T) {
	head := Tag{Name: Head}
	release := Tag{Name: "v99.0.0"}
	release.Version, _ = ParseVersion(release.Name)

	assert.True(t, Less(release, head))
	assert.False(t, Less(head, release))
	assert.False(t, Less(head, head))
}

type fakeLister struct {
	names   []string
	err     error
	pattern string
}

func (f *fakeLister) TagNames(pattern string) ([]string, error) {
	f.pattern = pattern
	return f.names, f.err
}

func TestResolve(t *testing.T) {
	t.Run("passes the pattern through", func(t *testing.T) {
		l := &fakeLister{names: []string{"v0.2.0", "v0.1.0"}}
		got, _, err := Resolve(l, "v*")
		require.NoError(t, err)
		assert.Equal(t, "v*", l.pattern)
		assert.Equal(t, []string{"v0.1.0", "v0.2.0", Head}, names(got))
	})

	t.Run("lister failure is fatal", func(t *testing.T) {
		boom := errors.New("boom")
		_, _, err := Resolve(&fakeLister{err: boom}, "v*")
		assert.ErrorIs(t, err, boom)
	})
}

func TestPairs(t *testing.T) {
	tests := map[string]struct {
		tags    []string
		want    []string
		wantErr error
	}{
		"several releases": {
			tags: []string{"v0.1.0", "v0.2.0", "v0.2.1"},
			want: []string{"v0.1.0..v0.2.0", "v0.2.0..v0.2.1", "v0.2.1..HEAD"},
		},
		"single release compares against HEAD only": {
			tags: []string{"v1.0.0"},
			want: []string{"v1.0.0..HEAD"},
		},
		"no release is an error": {
			tags:    nil,
			wantErr: ErrNoReleaseTags,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ordered, _ := Order(tt.tags)
			ranges, err := Pairs(ordered)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got := make([]string, len(ranges))
			for i, r := range ranges {
				got[i] = r.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPairs_Deterministic(t *testing.T) {
	ordered, _ := Order([]string{"v0.3.0", "v0.1.0", "v0.2.0"})

	first, err := Pairs(ordered)
	require.NoError(t, err)
	second, err := Pairs(ordered)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Range{From: ordered[2], To: Tag{Name: Head}}, first[len(first)-1])
}

func TestReverse(t *testing.T) {
	ordered, _ := Order([]string{"v0.1.0", "v0.2.0"})
	ranges, err := Pairs(ordered)
	require.NoError(t, err)

	reversed := Reverse(ranges)
	require.Len(t, reversed, 2)
	assert.Equal(t, "v0.2.0..HEAD", reversed[0].String())
	assert.Equal(t, "v0.1.0..v0.2.0", reversed[1].String())
}

func TestHeadingLevel(t *testing.T) {
	tests := map[string]struct {
		name    string
		want    int
		wantErr bool
	}{
		"minor release": {name: "v1.2.0", want: 1},
		"patch release": {name: "v1.2.3", want: 2},
		"major release": {name: "v2.0.0", want: 1},
		"head":          {name: Head, want: 1},
		"unprefixed":    {name: "0.1.1", want: 2},
		"not a version": {name: "latest", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := HeadingLevel(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPairs_NoEmptyRangeForEqualVersions(t *testing.T) {
	ordered, _ := Order([]string{"v1.0.0-rc.1", "v1.0.0+b2", "v1.0.0"})

	ranges, err := Pairs(ordered)
	require.NoError(t, err)

	got := make([]string, len(ranges))
	for i, r := range ranges {
		got[i] = r.String()
	}
	assert.Equal(t, []string{"v1.0.0-rc.1..v1.0.0", "v1.0.0..HEAD"}, got)
}

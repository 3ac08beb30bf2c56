package repoinfo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		url     string
		want    RepoInformation
		wantErr error
		host    string
	}{
		"https": {
			url:  "https://github.com/acme/widget",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"https with .git suffix": {
			url:  "https://github.com/acme/widget.git",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"extra path segments ignored": {
			url:  "https://github.com/acme/widget/tree/main",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"trailing slash": {
			url:  "https://github.com/acme/widget/",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"www host": {
			url:  "https://www.github.com/acme/widget",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"ssh scheme": {
			url:  "ssh://git@github.com/acme/widget.git",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"scp-like": {
			url:  "git@github.com:acme/widget.git",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"git+https": {
			url:  "git+https://github.com/acme/widget.git",
			want: RepoInformation{Owner: "acme", Repo: "widget"},
		},
		"unsupported host": {
			url:  "https://gitlab.com/acme/widget",
			host: "gitlab.com",
		},
		"missing repository segment": {
			url:     "https://github.com/acme",
			wantErr: ErrParseURL,
		},
		"only .git as repository": {
			url:     "https://github.com/acme/.git",
			wantErr: ErrParseURL,
		},
		"no host": {
			url:     "acme/widget",
			wantErr: ErrParseURL,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := FromURL(tt.url)
			switch {
			case tt.host != "":
				var hostErr *UnsupportedHostError
				require.True(t, errors.As(err, &hostErr), "got %v", err)
				assert.Equal(t, tt.host, hostErr.Host)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

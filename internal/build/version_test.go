package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDevBuild(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	tests := map[string]struct {
		version string
		want    bool
	}{
		"default dev build": {version: "dev", want: true},
		"release build":     {version: "1.2.3", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			Version = tt.version
			assert.Equal(t, tt.want, IsDevBuild())
		})
	}
}

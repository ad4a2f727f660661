package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "uploads/videos/a.mp4", want: "uploads/videos/a.mp4"},
		{key: "uploads//videos/./a.mp4", want: "uploads/videos/a.mp4"},
		{key: "uploads/videos/../pilotEvidence/b.pdf", want: "uploads/pilotEvidence/b.pdf"},
		{key: "", wantErr: true},
		{key: ".", wantErr: true},
		{key: "/etc/passwd", wantErr: true},
		{key: "../secret", wantErr: true},
		{key: "uploads/../../secret", wantErr: true},
		{key: `uploads\..\secret`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := CleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

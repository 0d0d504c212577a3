package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	err = s.SaveWithContext(ctx, "test-image.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "test-image.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := s.GetWithContext(ctx, "test-image.jpg")
	require.NoError(t, err)
	defer reader.Close()

	buf := make([]byte, 16)
	n, _ := reader.Read(buf)
	assert.Equal(t, "fake image bytes", string(buf[:n]))

	require.NoError(t, s.DeleteWithContext(ctx, "test-image.jpg"))

	exists, err = s.Exists(ctx, "test-image.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, identifier := range []string{"", "../escape.jpg", "/etc/passwd", "a/../../b.jpg"} {
		err := s.SaveWithContext(ctx, identifier, strings.NewReader("x"))
		assert.Error(t, err, "identifier %q should be rejected", identifier)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	cases := []struct {
		identifier string
		want       bool
	}{
		{"abc.jpg", true},
		{"thumb_abc.webp", true},
		{"", false},
		{"../abc.jpg", false},
		{"/abs/path.jpg", false},
		{"a\\b.jpg", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsValidIdentifier(tc.identifier), tc.identifier)
	}
}

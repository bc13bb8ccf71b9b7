package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomFileName(t *testing.T) {
	t.Run("keeps the original extension", func(t *testing.T) {
		name := RandomFileName("holiday video.MP4")
		assert.True(t, strings.HasSuffix(name, ".mp4"), "got %q", name)
	})

	t.Run("defaults to jpg without an extension", func(t *testing.T) {
		name := RandomFileName("upload")
		assert.True(t, strings.HasSuffix(name, ".jpg"), "got %q", name)
	})

	t.Run("names do not repeat", func(t *testing.T) {
		assert.NotEqual(t, RandomFileName("a.jpg"), RandomFileName("a.jpg"))
	})
}

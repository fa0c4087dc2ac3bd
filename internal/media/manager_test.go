package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestAddFilesSkipsInvalidIndividually(t *testing.T) {
	m := NewManager(domain.MediaPhoto, DefaultLimits(16))

	added, rejected := m.AddFiles([]File{
		{Name: "front.png", MimeType: "image/png", Content: pngHeader},
		{Name: "clip.mp4", MimeType: "video/mp4", Content: []byte("abc")},
		{Name: "huge.jpg", MimeType: "image/jpeg", Content: []byte(strings.Repeat("x", 17))},
		{Name: "empty.jpg", MimeType: "image/jpeg"},
		{Name: "side.jpg", MimeType: "image/jpeg; charset=binary", Content: []byte("jpeg")},
	})

	require.Len(t, added, 2)
	require.Len(t, rejected, 3)
	assert.Equal(t, "clip.mp4", rejected[0].FileName)
	assert.Contains(t, rejected[0].Reason, "not allowed")
	assert.Equal(t, "huge.jpg", rejected[1].FileName)
	assert.Equal(t, "empty.jpg", rejected[2].FileName)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "image/jpeg", added[1].MimeType)
	assert.True(t, strings.HasPrefix(added[0].Data, "data:image/png;base64,"))
	assert.NotEqual(t, added[0].ID, added[1].ID)
}

func TestAddFilesSniffsMissingType(t *testing.T) {
	m := NewManager(domain.MediaDocument, DefaultLimits(0))

	added, rejected := m.AddFiles([]File{{Name: "report", Content: []byte("%PDF-1.7 body")}})

	assert.Empty(t, rejected)
	require.Len(t, added, 1)
	assert.Equal(t, "application/pdf", added[0].MimeType)
}

func TestRemoveAndRestore(t *testing.T) {
	m := NewManager(domain.MediaPhoto, DefaultLimits(0))
	added, _ := m.AddFiles([]File{{Name: "a.png", MimeType: "image/png", Content: pngHeader}})
	require.Len(t, added, 1)

	existing := []domain.Attachment{
		{ID: added[0].ID, FileName: "dup.png"},
		{ID: "stored-1", FileName: "old.png", Persisted: true},
		{ID: "stored-1", FileName: "old-again.png"},
		{FileName: "no-id.png"},
	}
	assert.Equal(t, 1, m.RestoreFiles(existing))
	assert.Equal(t, 0, m.RestoreFiles(existing))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, domain.MediaPhoto, m.List()[1].Kind)

	assert.True(t, m.RemoveFile("stored-1"))
	assert.False(t, m.RemoveFile("stored-1"))
	assert.Equal(t, 1, m.Len())
}

func TestDataURLRoundTrip(t *testing.T) {
	url := DataURL("image/png", pngHeader)
	mimeType, raw, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, pngHeader, raw)

	_, _, err = DecodeDataURL("https://example.com/a.png")
	assert.Error(t, err)
}

func TestViewerNavigation(t *testing.T) {
	m := NewManager(domain.MediaPhoto, DefaultLimits(0))
	m.RestoreFiles([]domain.Attachment{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	v, err := m.OpenViewer("c")
	require.NoError(t, err)
	assert.Equal(t, "c", v.Current().ID)

	v.ZoomIn()
	v.Pan(10, 5)
	v.Rotate()
	assert.Equal(t, 1.25, v.Zoom)
	assert.Equal(t, 90, v.Rotation)
	assert.Equal(t, 10.0, v.PanX)

	v.Next()
	assert.Equal(t, "a", v.Current().ID)
	assert.Equal(t, 1.0, v.Zoom)
	assert.Zero(t, v.Rotation)

	v.Prev()
	v.Prev()
	assert.Equal(t, "b", v.Current().ID)

	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, 0.5, v.Zoom)
	v.Pan(3, 3)
	assert.Zero(t, v.PanX)

	_, err = m.OpenViewer("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

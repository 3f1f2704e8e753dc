package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileUpload_Validate(t *testing.T) {
	t.Run("accepts allowed content type with parameters", func(t *testing.T) {
		f := FileUpload{Filename: "a.pdf", ContentType: "application/pdf; charset=binary", Data: []byte("%PDF")}
		assert.NoError(t, f.Validate(DocumentContentTypes))
	})

	t.Run("rejects svg logo", func(t *testing.T) {
		f := FileUpload{Filename: "logo.svg", ContentType: "image/svg+xml", Data: []byte("<svg/>")}
		assert.Error(t, f.Validate(ImageContentTypes))
	})

	t.Run("rejects empty file", func(t *testing.T) {
		f := FileUpload{Filename: "a.png", ContentType: "image/png"}
		assert.Error(t, f.Validate(ImageContentTypes))
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		f := FileUpload{Filename: "a.png", ContentType: "image/png", Data: bytes.Repeat([]byte{1}, MaxUploadSize+1)}
		err := f.Validate(ImageContentTypes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum size")
	})
}

func TestObjectKey(t *testing.T) {
	owner := uuid.New()
	key := ObjectKey("documents", owner, `C:\Users\jan\Umowa o pracę.PDF`)
	assert.True(t, strings.HasPrefix(key, "documents/"+owner.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "-umowa-o-prace.pdf"))

	key = ObjectKey("logos", owner, "???.png")
	assert.True(t, strings.HasSuffix(key, "-file.png"))
}

func TestListQuery_Filter(t *testing.T) {
	f := ListQuery{All: true, PageSize: 500}.Filter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.PageSize)
	assert.True(t, f.IncludeInactive)
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoContentTypeSniffing(t *testing.T) {
	assert.Equal(t, "image/jpeg", photoContentType("/9j/4AAQSkZJRg..."))
	assert.Equal(t, "image/png", photoContentType("iVBORw0KGgo..."))
	assert.Equal(t, "application/octet-stream", photoContentType("R0lGODlh..."))
}

func TestPhotoExt(t *testing.T) {
	assert.Equal(t, ".jpg", photoExt("/9j/4AAQ"))
	assert.Equal(t, ".png", photoExt("iVBORw0KGgo"))
	assert.Equal(t, "", photoExt("unknown"))
}

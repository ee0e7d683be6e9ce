package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat_MimeTable(t *testing.T) {
	cases := map[string]string{
		"audio/wav":   "wav",
		"audio/wave":  "wav",
		"audio/x-wav": "wav",
		"audio/webm":  "webm",
		"audio/mpeg":  "mp3",
		"audio/mp3":   "mp3",
		"audio/mp4":   "m4a",
		"audio/x-m4a": "m4a",
		"audio/ogg":   "ogg",
		"audio/flac":  "flac",
	}

	for mimeType, want := range cases {
		// the MIME type wins even against a contradicting extension
		assert.Equal(t, want, DetectFormat("recording.xyz", mimeType), "mime %s", mimeType)
	}
}

func TestDetectFormat_ExtensionFallback(t *testing.T) {
	assert.Equal(t, "mp3", DetectFormat("meeting.MP3", ""))
	assert.Equal(t, "flac", DetectFormat("audio.flac", "application/octet-stream"))
	assert.Equal(t, "ogg", DetectFormat("a.b.ogg", ""))
	assert.Equal(t, "webm", DetectFormat("clip.webm", "text/plain"))
}

func TestDetectFormat_DefaultsToWav(t *testing.T) {
	assert.Equal(t, "wav", DetectFormat("noextension", ""))
	assert.Equal(t, "wav", DetectFormat("archive.zip", ""))
	assert.Equal(t, "wav", DetectFormat("", ""))
	assert.Equal(t, "wav", DetectFormat("trailingdot.", "application/unknown"))
}

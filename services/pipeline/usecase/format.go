package usecase

import (
	"strings"

	"github.com/meetscribe/backend/services/pipeline/consts"
)

var mimeToFormat = map[string]string{
	"audio/wav":   consts.FormatWAV,
	"audio/wave":  consts.FormatWAV,
	"audio/x-wav": consts.FormatWAV,
	"audio/webm":  consts.FormatWebM,
	"audio/mpeg":  consts.FormatMP3,
	"audio/mp3":   consts.FormatMP3,
	"audio/mp4":   consts.FormatM4A,
	"audio/x-m4a": consts.FormatM4A,
	"audio/ogg":   consts.FormatOGG,
	"audio/flac":  consts.FormatFLAC,
}

var knownExtensions = map[string]bool{
	consts.FormatWAV:  true,
	consts.FormatWebM: true,
	consts.FormatMP3:  true,
	consts.FormatM4A:  true,
	consts.FormatOGG:  true,
	consts.FormatFLAC: true,
}

// DetectFormat classifies the container format from metadata alone. The
// MIME type wins when it maps to a known format, the lowercased file
// extension is the fallback, and wav is the default when neither helps.
// Total function, never fails.
func DetectFormat(fileName, mimeType string) string {
	if mimeType != "" {
		if format, ok := mimeToFormat[strings.ToLower(mimeType)]; ok {
			return format
		}
	}

	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
		ext := strings.ToLower(fileName[idx+1:])
		if knownExtensions[ext] {
			return ext
		}
	}

	return consts.FormatWAV
}

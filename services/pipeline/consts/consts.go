package consts

const (
	// Audio formats
	FormatWAV     = "wav"
	FormatWebM    = "webm"
	FormatMP3     = "mp3"
	FormatM4A     = "m4a"
	FormatOGG     = "ogg"
	FormatFLAC    = "flac"
	FormatUnknown = "unknown"

	// Canonical audio settings
	TargetCodec      = "pcm_s16le"
	TargetSampleRate = 16000
	TargetChannels   = 1

	// Limits
	MaxAudioSize = 100 * 1024 * 1024 // 100MB

	// Speaker label for sentences left over after all diarization
	// segments are consumed.
	UnknownSpeaker = "UNKNOWN"

	// Machine-readable code for a provider rejecting audio over its
	// duration ceiling.
	CodeDurationLimit = "audio_duration_limit"
)

// NativeFormats are containers the recognizer accepts without conversion.
var NativeFormats = map[string]bool{
	FormatWAV:  true,
	FormatWebM: true,
}

package usecase

import (
	"strings"

	"github.com/meetscribe/backend/services/pipeline/consts"
	"github.com/meetscribe/backend/services/pipeline/entity"
)

// MergeSpeakers reconciles a plain transcript with time-segmented speaker
// intervals. Neither side carries word-level timestamps, so the alignment
// is ordinal: sentence i goes to diarization segment i. Sentences left
// over after the segments run out are attributed to UNKNOWN at the tail
// of the recording; segments left over after the sentences run out are
// discarded. This is only as good as sentence order matching speaker-turn
// order, which is an accepted approximation, not something to fix here.
func MergeSpeakers(transcript string, diarization *entity.DiarizationResult) []entity.SpeakerSpan {
	sentences := splitSentences(transcript)
	spans := make([]entity.SpeakerSpan, 0, len(sentences))

	idx := 0
	for _, segment := range diarization.Segments {
		text := ""
		for idx < len(sentences) {
			text = strings.TrimSpace(sentences[idx])
			idx++
			if text != "" {
				break
			}
		}
		if text == "" {
			break
		}

		spans = append(spans, entity.SpeakerSpan{
			Text:         text,
			SpeakerLabel: segment.SpeakerLabel,
			StartSeconds: segment.StartSeconds,
			EndSeconds:   segment.EndSeconds,
		})
	}

	for ; idx < len(sentences); idx++ {
		text := strings.TrimSpace(sentences[idx])
		if text == "" {
			continue
		}
		spans = append(spans, entity.SpeakerSpan{
			Text:         text,
			SpeakerLabel: consts.UnknownSpeaker,
			StartSeconds: diarization.TotalDurationSeconds,
			EndSeconds:   diarization.TotalDurationSeconds,
		})
	}

	return spans
}

// splitSentences breaks text on terminal punctuation, keeping the
// terminator with its sentence. A trailing fragment without punctuation
// is kept as a final sentence; text with no punctuation at all is one
// sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		// runs like "..." or "?!" belong to one sentence
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		sentences = append(sentences, string(runes[start:end+1]))
		start = end + 1
		i = end
	}

	if tail := string(runes[start:]); strings.TrimSpace(tail) != "" {
		sentences = append(sentences, tail)
	}

	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

package engine

// --- Tool inputs ---

type TranscriptInput struct {
	VideoURL string `json:"video_url" jsonschema:"YouTube video URL or 11-character video ID"`
	Language string `json:"language,omitempty" jsonschema:"Language code (e.g. 'en', 'es'). Falls back to English, then any available track."`
}

type VideoInfoInput struct {
	VideoURL string `json:"video_url" jsonschema:"YouTube video URL or 11-character video ID"`
}

// --- Tool outputs (JSON responses) ---

// TranscriptSegment is one timed caption unit.
type TranscriptSegment struct {
	Start    float64 `json:"start"`    // seconds from video start
	Duration float64 `json:"duration"` // seconds
	Text     string  `json:"text"`
}

type TranscriptOutput struct {
	VideoID    string `json:"video_id"`
	Language   string `json:"language"`
	Transcript string `json:"transcript"` // space-joined segment texts, chronological
	Truncated  bool   `json:"truncated,omitempty"`
}

type TimedTranscriptOutput struct {
	VideoID  string              `json:"video_id"`
	Language string              `json:"language"`
	Segments []TranscriptSegment `json:"segments"`
}

// CaptionLanguage describes one available caption track.
type CaptionLanguage struct {
	Name          string `json:"name,omitempty"` // human-readable, e.g. "English (auto-generated)"
	Code          string `json:"code"`           // BCP-47, e.g. "en", "es-419"
	AutoGenerated bool   `json:"auto_generated,omitempty"`
}

type VideoInfoOutput struct {
	VideoID         string            `json:"video_id"`
	Title           string            `json:"title"`
	Author          string            `json:"author,omitempty"`
	DurationSeconds int64             `json:"duration_seconds"`
	ViewCount       int64             `json:"view_count,omitempty"`
	Description     string            `json:"description,omitempty"`
	Live            bool              `json:"live,omitempty"`
	Captions        []CaptionLanguage `json:"captions"`
}

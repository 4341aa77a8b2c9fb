package engine

import "errors"

// Error taxonomy for transcript retrieval. Tool handlers translate these into
// the messages returned to the host; sources wrap them with endpoint context.
var (
	// ErrInvalidVideoID means the caller-supplied reference does not contain
	// an 11-character YouTube video ID in any recognized URL shape.
	ErrInvalidVideoID = errors.New("could not extract video ID")

	// ErrVideoUnavailable means the video is private, deleted, or otherwise
	// not playable (playability status ERROR, LOGIN_REQUIRED, UNPLAYABLE).
	ErrVideoUnavailable = errors.New("video is unavailable")

	// ErrTranscriptsDisabled means the video plays but the uploader turned
	// captions off — the player response carries no captions block.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled")

	// ErrNoTranscript means caption tracks were advertised but none could be
	// used (no track in any language, or all gated behind a PoToken).
	ErrNoTranscript = errors.New("no transcript found")
)

package sources

// YouTube implementation is split across files by responsibility:
//   videoid.go            — video ID extraction from caller-supplied references
//   youtube_innertube.go  — Innertube API types, constants, and low-level HTTP primitives
//   youtube_player.go     — player response retrieval (watch page scrape + ANDROID fallback)
//                           and playability → error mapping
//   youtube_transcript.go — caption track selection and timed segment fetching
//   youtube_info.go       — video metadata and caption language listing

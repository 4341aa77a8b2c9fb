package sources

import (
	"context"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// maxDescriptionRunes caps the description carried in video info responses.
const maxDescriptionRunes = 1000

// FetchVideoInfo fetches video metadata and the list of available caption
// languages from the player response videoDetails.
func FetchVideoInfo(ctx context.Context, videoID string) (engine.VideoInfoOutput, error) {
	ctx, cancel := fetchContext(ctx)
	defer cancel()

	pr, err := getPlayerResponse(ctx, videoID)
	if err != nil {
		return engine.VideoInfoOutput{}, err
	}
	return infoFromPlayer(videoID, pr)
}

// infoFromPlayer maps a player response onto the video info output shape.
func infoFromPlayer(videoID string, pr *innertubePlayerResp) (engine.VideoInfoOutput, error) {
	if perr := playabilityErr(pr); perr != nil {
		return engine.VideoInfoOutput{}, perr
	}

	vd := pr.VideoDetails
	if vd == nil || vd.Title == "" {
		return engine.VideoInfoOutput{}, fmt.Errorf("%w: no video details for %s", engine.ErrVideoUnavailable, videoID)
	}
	if vd.IsPrivate {
		return engine.VideoInfoOutput{}, fmt.Errorf("%w: video %s is private", engine.ErrVideoUnavailable, videoID)
	}

	out := engine.VideoInfoOutput{
		VideoID:     videoID,
		Title:       vd.Title,
		Author:      vd.Author,
		Description: engine.TruncateRunes(engine.CollapseWhitespace(vd.ShortDescription), maxDescriptionRunes, "…"),
		Live:        vd.IsLiveContent,
		Captions:    captionLanguages(pr),
	}
	if n, err := strconv.ParseInt(vd.LengthSeconds, 10, 64); err == nil {
		out.DurationSeconds = n
	}
	if n, err := strconv.ParseInt(vd.ViewCount, 10, 64); err == nil {
		out.ViewCount = n
	}
	return out, nil
}

// captionLanguages lists the caption tracks advertised by the player response,
// manual tracks first, preserving YouTube's order within each group.
func captionLanguages(pr *innertubePlayerResp) []engine.CaptionLanguage {
	if pr.Captions == nil {
		return nil
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	var manual, auto []engine.CaptionLanguage
	for _, t := range tracks {
		cl := engine.CaptionLanguage{
			Name:          t.Name.text(),
			Code:          t.LanguageCode,
			AutoGenerated: t.Kind == "asr",
		}
		if cl.AutoGenerated {
			auto = append(auto, cl)
		} else {
			manual = append(manual, cl)
		}
	}
	return append(manual, auto...)
}

package domain

// MediaIDMaxLength caps internal media ids.
const MediaIDMaxLength = 64

// MediaID is the internal name a media asset is referenced by in task
// and track definitions.
type MediaID string

// NewMediaID validates length and non-emptiness.
func NewMediaID(s string) (MediaID, error) {
	if s == "" {
		return "", invalidValue("invalid media id: expected not empty string")
	}
	if len(s) > MediaIDMaxLength {
		return "", invalidValue("invalid media id: expected length <= %d, got %d", MediaIDMaxLength, len(s))
	}
	return MediaID(s), nil
}

// FileID is the Telegram file identifier the asset is re-sent by.
type FileID string

// MediaType distinguishes how an asset is delivered in chat.
type MediaType string

const (
	MediaImage     MediaType = "image"
	MediaVideoNote MediaType = "video_note"
)

// Media links an internal media id to an uploaded Telegram file.
type Media struct {
	id        MediaID
	fileID    FileID
	mediaType MediaType
}

// NewMedia registers an uploaded asset.
func NewMedia(id MediaID, fileID FileID, mediaType MediaType) Media {
	return Media{id: id, fileID: fileID, mediaType: mediaType}
}

func (m Media) ID() MediaID { return m.id }
func (m Media) FileID() FileID { return m.fileID }
func (m Media) Type() MediaType { return m.mediaType }

package youtube

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	PrivacyPrivate  = "private"
	PrivacyUnlisted = "unlisted"
	PrivacyPublic   = "public"
)

func ValidPrivacy(privacy string) bool {
	switch privacy {
	case PrivacyPrivate, PrivacyUnlisted, PrivacyPublic:
		return true
	}
	return false
}

// VideoOption adjusts the video resource before it is inserted.
type VideoOption func(*youtube.Video) error

func WithPrivacy(privacy string) VideoOption {
	return func(video *youtube.Video) error {
		if !ValidPrivacy(privacy) {
			return fmt.Errorf("invalid privacy status: %s", privacy)
		}
		video.Status.PrivacyStatus = privacy
		return nil
	}
}

// WithCategory sets the numeric category ID. Empty leaves the choice to YouTube.
func WithCategory(categoryID string) VideoOption {
	return func(video *youtube.Video) error {
		video.Snippet.CategoryId = categoryID
		return nil
	}
}

func WithTags(tags []string) VideoOption {
	return func(video *youtube.Video) error {
		if len(tags) > 0 {
			video.Snippet.Tags = tags
		}
		return nil
	}
}

type tokenSourcer interface {
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
}

// Publisher uploads staged videos on behalf of the user who granted access.
type Publisher struct {
	auth       tokenSourcer
	videoOpts  []VideoOption
	clientOpts []option.ClientOption
}

func NewPublisher(auth tokenSourcer, videoOpts []VideoOption, clientOpts ...option.ClientOption) *Publisher {
	return &Publisher{
		auth:       auth,
		videoOpts:  videoOpts,
		clientOpts: clientOpts,
	}
}

// Publish inserts a new video with the given metadata and media. The video
// is private unless a WithPrivacy option says otherwise.
func (p *Publisher) Publish(ctx context.Context, token *oauth2.Token, media io.Reader, title, description string) (*youtube.Video, error) {
	upload := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: PrivacyPrivate},
	}

	for _, opt := range p.videoOpts {
		if err := opt(upload); err != nil {
			return nil, errors.Wrap(err, "failed to apply option")
		}
	}

	service, err := NewService(ctx, p.auth.TokenSource(ctx, token), p.clientOpts...)
	if err != nil {
		return nil, err
	}

	video, err := service.Videos.Insert([]string{"snippet", "status"}, upload).
		// Zero chunk size keeps it a single multipart request with no
		// resumable session and no retries.
		Media(media, googleapi.ChunkSize(0)).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, errors.Wrapf(err, "failed to insert video (HTTP %d)", apiErr.Code)
		}
		return nil, errors.Wrap(err, "failed to insert video")
	}

	return video, nil
}

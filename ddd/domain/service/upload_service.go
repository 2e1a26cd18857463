package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"video-ingest-service/ddd/domain/entity"
	"video-ingest-service/ddd/domain/gateway"
	"video-ingest-service/ddd/domain/port"
	"video-ingest-service/ddd/domain/repo"
	"video-ingest-service/ddd/domain/vo"
	"video-ingest-service/pkg/errno"
	"video-ingest-service/pkg/logger"
)

// UploadCommand carries one streamed upload request.
type UploadCommand struct {
	Title       string
	Description string
	OwnerUUID   string
	Filename    string
	ContentType string
	Size        int64 // declared size in bytes
	Body        io.Reader
}

// UploadService is the ingestion pipeline: validate, persist metadata,
// store raw bytes, transcode, commit, and fan out post-commit effects.
// Every failure after the record is created runs the same rollback path.
type UploadService interface {
	// UploadStream ingests a byte stream; the committed url follows the
	// "{id}/{filename}" convention.
	UploadStream(ctx context.Context, cmd *UploadCommand) (*entity.VideoEntity, error)
	// UploadFromPath ingests a server-local file; the raw copy lands flat
	// in the storage root and the committed url is just "{filename}".
	// The two conventions are intentionally distinct.
	UploadFromPath(ctx context.Context, title, description, ownerUUID, path string) (*entity.VideoEntity, error)
}

type uploadServiceImpl struct {
	videos         repo.VideoRepository
	layout         gateway.StorageLayout
	encoder        port.Encoder
	facade         *PostCommitFacade
	maxUploadBytes int64
}

// NewUploadService wires the pipeline; maxUploadBytes is the inclusive
// upload size limit.
func NewUploadService(
	videos repo.VideoRepository,
	layout gateway.StorageLayout,
	encoder port.Encoder,
	facade *PostCommitFacade,
	maxUploadBytes int64,
) UploadService {
	return &uploadServiceImpl{
		videos:         videos,
		layout:         layout,
		encoder:        encoder,
		facade:         facade,
		maxUploadBytes: maxUploadBytes,
	}
}

// validate rejects bad input before any filesystem or store write.
func (s *uploadServiceImpl) validate(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "video/") {
		return errno.ErrContentTypeNotVideo
	}
	if size <= 0 {
		return errno.ErrEmptyUpload
	}
	if size > s.maxUploadBytes {
		return errno.ErrUploadTooLarge
	}
	return nil
}

func (s *uploadServiceImpl) UploadStream(ctx context.Context, cmd *UploadCommand) (*entity.VideoEntity, error) {
	if cmd == nil || cmd.Body == nil {
		return nil, errno.ErrEmptyUpload
	}
	if err := s.validate(cmd.ContentType, cmd.Size); err != nil {
		return nil, err
	}

	// First metadata write: the record exists, with a null url, before
	// any byte lands on disk.
	video := entity.NewVideoEntity(cmd.Title, cmd.Description, cmd.OwnerUUID)
	video, err := s.videos.CreateVideo(ctx, video)
	if err != nil {
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	state := vo.UploadStateCreated

	dir, err := s.layout.EnsureDir(video.VideoUUID())
	if err != nil {
		return nil, s.rollback(ctx, video, state, []string{dir}, err)
	}

	filename := uniqueFilename(cmd.Filename)
	rawPath := filepath.Join(dir, filename)
	if err := copyStream(cmd.Body, rawPath); err != nil {
		return nil, s.rollback(ctx, video, state, []string{dir}, err)
	}
	state = advance(state, vo.UploadStateStored)

	if err := s.encoder.Encode(ctx, rawPath, dir, vo.DefaultLadder()); err != nil {
		return nil, s.rollback(ctx, video, state, []string{dir}, err)
	}
	state = advance(state, vo.UploadStateTranscoded)

	// Second metadata write: the commit.
	video.Commit(video.VideoUUID() + "/" + filename)
	if _, err := s.videos.UpdateVideo(ctx, video); err != nil {
		return nil, s.rollback(ctx, video, state, []string{dir}, err)
	}
	state = advance(state, vo.UploadStateCommitted)

	logger.Infof("upload committed video_uuid=%s owner=%s state=%s", video.VideoUUID(), video.OwnerUUID(), state)
	if s.facade != nil {
		s.facade.AfterCommit(ctx, video, "Video processed successfully: "+video.Title())
	}
	return video, nil
}

func (s *uploadServiceImpl) UploadFromPath(ctx context.Context, title, description, ownerUUID, path string) (*entity.VideoEntity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errno.NewBizError(errno.ErrInvalidParam, err)
	}
	if err := s.validate(contentTypeForPath(path), info.Size()); err != nil {
		return nil, err
	}

	video := entity.NewVideoEntity(title, description, ownerUUID)
	video, err = s.videos.CreateVideo(ctx, video)
	if err != nil {
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	state := vo.UploadStateCreated

	if err := s.layout.EnsureRoot(); err != nil {
		return nil, s.rollback(ctx, video, state, nil, err)
	}
	filename := uniqueFilename(filepath.Base(path))
	rawPath := filepath.Join(s.layout.Root(), filename)
	if err := copyFile(path, rawPath); err != nil {
		return nil, s.rollback(ctx, video, state, []string{rawPath}, err)
	}
	state = advance(state, vo.UploadStateStored)

	dir, err := s.layout.EnsureDir(video.VideoUUID())
	if err != nil {
		return nil, s.rollback(ctx, video, state, []string{rawPath, dir}, err)
	}
	if err := s.encoder.Encode(ctx, rawPath, dir, vo.DefaultLadder()); err != nil {
		return nil, s.rollback(ctx, video, state, []string{rawPath, dir}, err)
	}
	state = advance(state, vo.UploadStateTranscoded)

	// Flat url convention for this entry point: no id segment.
	video.Commit(filename)
	if _, err := s.videos.UpdateVideo(ctx, video); err != nil {
		return nil, s.rollback(ctx, video, state, []string{rawPath, dir}, err)
	}
	state = advance(state, vo.UploadStateCommitted)

	logger.Infof("import committed video_uuid=%s owner=%s state=%s", video.VideoUUID(), video.OwnerUUID(), state)
	if s.facade != nil {
		s.facade.AfterCommit(ctx, video, "Video uploaded: "+video.Title())
	}
	return video, nil
}

// advance enforces the forward-only pipeline order; a rejected step is a
// programming error and keeps the current state.
func advance(cur, next vo.UploadState) vo.UploadState {
	if !cur.CanTransitionTo(next) {
		logger.Errorf("invalid upload state transition from=%s to=%s", cur, next)
		return cur
	}
	return next
}

// rollback compensates a failed upload: delete whatever landed on disk,
// then delete the metadata record. It is best-effort and not
// transactional; each step is independently fallible and logged, and the
// caller always sees ProcessingFailure wrapping the root cause.
func (s *uploadServiceImpl) rollback(ctx context.Context, video *entity.VideoEntity, state vo.UploadState, paths []string, cause error) error {
	logger.Errorf("upload failed, rolling back video_uuid=%s state=%s error=%v", video.VideoUUID(), state, cause)

	// Compensation must run even when the failure is the caller's own
	// cancellation, or the record would survive with a null url.
	ctx = context.WithoutCancel(ctx)

	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.IsDir() {
			s.layout.RemoveTree(p)
		} else if err := os.Remove(p); err != nil {
			logger.Warnf("rollback file delete failed path=%s error=%v", p, err)
		}
	}

	if err := s.videos.DeleteByUUID(ctx, video.VideoUUID()); err != nil {
		logger.Errorf("rollback record delete failed video_uuid=%s error=%v", video.VideoUUID(), err)
	}

	return errno.NewBizError(errno.ErrProcessing, cause)
}

// videoContentTypes covers the common container extensions; the host
// mime table is not guaranteed to know any of them.
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".wmv":  "video/x-ms-wmv",
	".ts":   "video/mp2t",
}

func contentTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := videoContentTypes[ext]; ok {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// uniqueFilename prefixes the original name with a random token so
// concurrent uploads of the same file cannot collide.
func uniqueFilename(original string) string {
	base := filepath.Base(original)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}

// copyStream writes the body to dst incrementally, bounding memory.
func copyStream(body io.Reader, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create raw copy: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("copy upload stream: %w", err)
	}
	return f.Close()
}

// copyFile copies src to dst incrementally.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	return copyStream(in, dst)
}

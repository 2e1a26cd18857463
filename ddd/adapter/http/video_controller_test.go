package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"video-ingest-service/ddd/application/cqe"
	"video-ingest-service/ddd/application/dto"
	"video-ingest-service/pkg/errno"
)

type fakeVideoApp struct {
	uploadErr   error
	uploaded    *cqe.UploadVideoReq
	manifest    string
	manifestErr error
	rawPath     string
	rawErr      error
	videos      []*dto.VideoDto
}

func (a *fakeVideoApp) UploadVideo(ctx context.Context, req *cqe.UploadVideoReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if a.uploadErr != nil {
		return nil, a.uploadErr
	}
	a.uploaded = req
	return &dto.VideoDto{VideoUUID: "vid-1", Title: req.Title, OwnerUUID: req.OwnerUUID}, nil
}

func (a *fakeVideoApp) ImportVideo(ctx context.Context, req *cqe.ImportVideoReq) (*dto.VideoDto, error) {
	return nil, errno.ErrInternalServer
}

func (a *fakeVideoApp) ListVideos(ctx context.Context) ([]*dto.VideoDto, error) {
	return a.videos, nil
}

func (a *fakeVideoApp) ListVideosByOwner(ctx context.Context, ownerUUID string) ([]*dto.VideoDto, error) {
	return a.videos, nil
}

func (a *fakeVideoApp) GetVideo(ctx context.Context, videoUUID string) (*dto.VideoDto, error) {
	if len(a.videos) == 0 {
		return nil, errno.ErrVideoNotFound
	}
	return a.videos[0], nil
}

func (a *fakeVideoApp) ResolveManifest(ctx context.Context, req *cqe.StreamVideoReq) (string, error) {
	if a.manifestErr != nil {
		return "", a.manifestErr
	}
	return a.manifest, nil
}

func (a *fakeVideoApp) ResolveRaw(ctx context.Context, videoUUID string) (string, error) {
	if a.rawErr != nil {
		return "", a.rawErr
	}
	return a.rawPath, nil
}

func newTestEngine(app *fakeVideoApp) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewRouter(app, "").SetupRoutes(engine)
	return engine
}

func multipartUpload(t *testing.T, title, owner, filename, contentType string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if title != "" {
		if err := w.WriteField("title", title); err != nil {
			t.Fatal(err)
		}
	}
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if owner != "" {
		req.Header.Set("X-User-UUID", owner)
	}
	return req
}

func TestUploadVideoEndpoint(t *testing.T) {
	app := &fakeVideoApp{}
	engine := newTestEngine(app)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartUpload(t, "trip", "owner-1", "trip.mp4", "video/mp4", []byte("bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if app.uploaded == nil {
		t.Fatal("upload never reached the application service")
	}
	if app.uploaded.Filename != "trip.mp4" || app.uploaded.ContentType != "video/mp4" {
		t.Fatalf("file metadata lost: %+v", app.uploaded)
	}
	if app.uploaded.Size != int64(len("bytes")) {
		t.Fatalf("declared size = %d", app.uploaded.Size)
	}
}

func TestUploadVideoDefaultsOwner(t *testing.T) {
	app := &fakeVideoApp{}
	engine := newTestEngine(app)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartUpload(t, "trip", "", "trip.mp4", "video/mp4", []byte("bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if app.uploaded.OwnerUUID != "default" {
		t.Fatalf("owner = %q, want default", app.uploaded.OwnerUUID)
	}
}

func TestUploadVideoMissingTitleIs400(t *testing.T) {
	engine := newTestEngine(&fakeVideoApp{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartUpload(t, "", "owner-1", "trip.mp4", "video/mp4", []byte("bytes")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != errno.ErrTitleRequired.Code {
		t.Fatalf("code = %d, want %d", resp.Code, errno.ErrTitleRequired.Code)
	}
}

func TestUploadVideoMissingFileIs400(t *testing.T) {
	engine := newTestEngine(&fakeVideoApp{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "trip")
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-User-UUID", "owner-1")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadVideoProcessingFailureIs500(t *testing.T) {
	app := &fakeVideoApp{uploadErr: errno.NewBizError(errno.ErrProcessing, nil)}
	engine := newTestEngine(app)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartUpload(t, "trip", "owner-1", "trip.mp4", "video/mp4", []byte("bytes")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestStreamVideoServesManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "720p.m3u8")
	if err := os.WriteFile(manifest, []byte("#EXTM3U\n#EXT-X-PLAYLIST-TYPE:VOD\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := newTestEngine(&fakeVideoApp{manifest: manifest})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos/vid-1/stream?quality=720p", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.apple.mpegurl" {
		t.Fatalf("content type = %q", got)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("#EXTM3U")) {
		t.Fatal("manifest body not served")
	}
}

func TestStreamVideoUnknownQualityIs404(t *testing.T) {
	engine := newTestEngine(&fakeVideoApp{manifestErr: errno.ErrRenditionUnknown})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos/vid-1/stream?quality=9999p", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRawVideoNotReadyIs404(t *testing.T) {
	engine := newTestEngine(&fakeVideoApp{rawErr: errno.ErrVideoNotReady})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos/vid-1/raw", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListVideosEnvelope(t *testing.T) {
	app := &fakeVideoApp{videos: []*dto.VideoDto{{VideoUUID: "vid-1", Title: "trip"}}}
	engine := newTestEngine(app)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Code int             `json:"code"`
		Data []*dto.VideoDto `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != errno.OK.Code || len(resp.Data) != 1 || resp.Data[0].VideoUUID != "vid-1" {
		t.Fatalf("unexpected envelope %s", rec.Body.String())
	}
}

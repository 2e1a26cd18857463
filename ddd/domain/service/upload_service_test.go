package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"video-ingest-service/ddd/domain/entity"
	"video-ingest-service/ddd/domain/gateway"
	"video-ingest-service/ddd/domain/vo"
	"video-ingest-service/ddd/infrastructure/storagefs"
	"video-ingest-service/pkg/errno"
)

// --- fakes ---

type fakeRepo struct {
	nextID      uint
	records     map[string]*entity.VideoEntity
	createCalls int
	failCreate  bool
	failUpdate  bool
	failDelete  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*entity.VideoEntity{}}
}

func (r *fakeRepo) CreateVideo(ctx context.Context, video *entity.VideoEntity) (*entity.VideoEntity, error) {
	r.createCalls++
	if r.failCreate {
		return nil, errors.New("create refused")
	}
	r.nextID++
	uuid := fmt.Sprintf("uuid-%d", r.nextID)
	video.AssignIdentity(r.nextID, uuid)
	r.records[uuid] = video
	return video, nil
}

func (r *fakeRepo) UpdateVideo(ctx context.Context, video *entity.VideoEntity) (*entity.VideoEntity, error) {
	if r.failUpdate {
		return nil, errors.New("update refused")
	}
	r.records[video.VideoUUID()] = video
	return video, nil
}

func (r *fakeRepo) FindByUUID(ctx context.Context, videoUUID string) (*entity.VideoEntity, error) {
	v, ok := r.records[videoUUID]
	if !ok {
		return nil, errno.ErrVideoNotFound
	}
	return v, nil
}

func (r *fakeRepo) FindByOwner(ctx context.Context, ownerUUID string) ([]*entity.VideoEntity, error) {
	var out []*entity.VideoEntity
	for _, v := range r.records {
		if v.OwnerUUID() == ownerUUID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindAll(ctx context.Context) ([]*entity.VideoEntity, error) {
	var out []*entity.VideoEntity
	for _, v := range r.records {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeRepo) DeleteByUUID(ctx context.Context, videoUUID string) error {
	if r.failDelete {
		return errors.New("delete refused")
	}
	if _, ok := r.records[videoUUID]; !ok {
		return errno.ErrVideoNotFound
	}
	delete(r.records, videoUUID)
	return nil
}

type fakeEncoder struct {
	calls     int
	lastInput string
	lastDir   string
	err       error
}

func (e *fakeEncoder) Encode(ctx context.Context, inputPath, outputDir string, renditions []vo.Rendition) error {
	e.calls++
	e.lastInput = inputPath
	e.lastDir = outputDir
	if e.err != nil {
		return e.err
	}
	for _, r := range renditions {
		if err := os.WriteFile(filepath.Join(outputDir, r.ManifestName()), []byte("#EXTM3U\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakePublisher struct {
	messages []string
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, text string) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, text)
	return nil
}

type fakeCache struct {
	listings map[string][]gateway.CachedVideo
	setErr   error
	getErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{listings: map[string][]gateway.CachedVideo{}}
}

func (c *fakeCache) SetOwnerListing(ctx context.Context, ownerUUID string, listing []gateway.CachedVideo, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.listings[ownerUUID] = listing
	return nil
}

func (c *fakeCache) GetOwnerListing(ctx context.Context, ownerUUID string) ([]gateway.CachedVideo, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	l, ok := c.listings[ownerUUID]
	return l, ok, nil
}

// --- harness ---

type uploadFixture struct {
	repo      *fakeRepo
	layout    *storagefs.Layout
	encoder   *fakeEncoder
	publisher *fakePublisher
	cache     *fakeCache
	svc       UploadService
}

func newUploadFixture(t *testing.T, maxBytes int64) *uploadFixture {
	t.Helper()
	repo := newFakeRepo()
	layout := storagefs.NewLayout(t.TempDir())
	encoder := &fakeEncoder{}
	publisher := &fakePublisher{}
	cache := newFakeCache()
	facade := NewPostCommitFacade(repo, cache, publisher, time.Minute)
	return &uploadFixture{
		repo:      repo,
		layout:    layout,
		encoder:   encoder,
		publisher: publisher,
		cache:     cache,
		svc:       NewUploadService(repo, layout, encoder, facade, maxBytes),
	}
}

func streamCommand(body string) *UploadCommand {
	return &UploadCommand{
		Title:       "trip",
		Description: "holiday clip",
		OwnerUUID:   "owner-1",
		Filename:    "trip.mp4",
		ContentType: "video/mp4",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

// --- tests ---

func TestUploadStreamCommits(t *testing.T) {
	f := newUploadFixture(t, 1<<20)

	video, err := f.svc.UploadStream(context.Background(), streamCommand("fake video bytes"))
	if err != nil {
		t.Fatalf("UploadStream: %v", err)
	}
	if !video.IsCommitted() {
		t.Fatal("video not committed")
	}

	url := *video.URL()
	if !strings.HasPrefix(url, video.VideoUUID()+"/") {
		t.Fatalf("url %q does not start with %q/", url, video.VideoUUID())
	}
	if !strings.HasSuffix(url, "_trip.mp4") {
		t.Fatalf("url %q does not keep the original filename", url)
	}

	raw := filepath.Join(f.layout.Root(), filepath.FromSlash(url))
	if _, err := os.Stat(raw); err != nil {
		t.Fatalf("raw copy missing: %v", err)
	}
	for _, r := range vo.DefaultLadder() {
		manifest := filepath.Join(f.layout.DirFor(video.VideoUUID()), r.ManifestName())
		if _, err := os.Stat(manifest); err != nil {
			t.Fatalf("manifest %s missing: %v", r.Label, err)
		}
	}

	if len(f.publisher.messages) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.publisher.messages))
	}
	if got, want := f.publisher.messages[0], "Video processed successfully: trip"; got != want {
		t.Fatalf("event = %q, want %q", got, want)
	}
	if _, ok := f.cache.listings["owner-1"]; !ok {
		t.Fatal("owner listing cache not refreshed")
	}
}

func TestUploadStreamRejectsBeforeAnyWrite(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*UploadCommand)
		wantErr *errno.Errno
	}{
		{"non-video content type", func(c *UploadCommand) { c.ContentType = "image/png" }, errno.ErrContentTypeNotVideo},
		{"zero size", func(c *UploadCommand) { c.Size = 0 }, errno.ErrEmptyUpload},
		{"negative size", func(c *UploadCommand) { c.Size = -1 }, errno.ErrEmptyUpload},
		{"over limit", func(c *UploadCommand) { c.Size = 11 }, errno.ErrUploadTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newUploadFixture(t, 10)
			cmd := streamCommand("x")
			tc.mutate(cmd)

			_, err := f.svc.UploadStream(context.Background(), cmd)
			if !errno.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if f.repo.createCalls != 0 {
				t.Fatal("record created before validation passed")
			}
			if f.encoder.calls != 0 {
				t.Fatal("encoder invoked for rejected upload")
			}
		})
	}
}

func TestUploadStreamSizeLimitIsInclusive(t *testing.T) {
	f := newUploadFixture(t, 10)

	cmd := streamCommand("0123456789") // exactly the limit
	if _, err := f.svc.UploadStream(context.Background(), cmd); err != nil {
		t.Fatalf("upload at the limit rejected: %v", err)
	}
}

func TestUploadStreamRollsBackOnEncoderFailure(t *testing.T) {
	f := newUploadFixture(t, 1<<20)
	f.encoder.err = errors.New("exit status 1")

	_, err := f.svc.UploadStream(context.Background(), streamCommand("bytes"))
	if !errno.Is(err, errno.ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
	if len(f.repo.records) != 0 {
		t.Fatal("metadata record survived rollback")
	}
	if _, err := os.Stat(f.encoder.lastDir); !os.IsNotExist(err) {
		t.Fatalf("video directory survived rollback: %v", err)
	}
	if len(f.publisher.messages) != 0 {
		t.Fatal("event published for failed upload")
	}
}

func TestUploadStreamRollsBackOnCommitFailure(t *testing.T) {
	f := newUploadFixture(t, 1<<20)
	f.repo.failUpdate = true

	_, err := f.svc.UploadStream(context.Background(), streamCommand("bytes"))
	if !errno.Is(err, errno.ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
	if len(f.repo.records) != 0 {
		t.Fatal("metadata record survived rollback")
	}
}

func TestUploadStreamCreateFailureIsStoreError(t *testing.T) {
	f := newUploadFixture(t, 1<<20)
	f.repo.failCreate = true

	_, err := f.svc.UploadStream(context.Background(), streamCommand("bytes"))
	if !errno.Is(err, errno.ErrStore) {
		t.Fatalf("err = %v, want ErrStore", err)
	}
	if f.encoder.calls != 0 {
		t.Fatal("encoder invoked after failed create")
	}
}

// ctxAwareRepo refuses writes once the context is cancelled, like a real
// driver would.
type ctxAwareRepo struct {
	*fakeRepo
}

func (r *ctxAwareRepo) DeleteByUUID(ctx context.Context, videoUUID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.fakeRepo.DeleteByUUID(ctx, videoUUID)
}

// cancellingEncoder simulates a client disconnect mid-transcode.
type cancellingEncoder struct {
	cancel context.CancelFunc
}

func (e *cancellingEncoder) Encode(ctx context.Context, inputPath, outputDir string, renditions []vo.Rendition) error {
	e.cancel()
	return ctx.Err()
}

func TestUploadStreamCancellationStillDeletesRecord(t *testing.T) {
	repo := newFakeRepo()
	layout := storagefs.NewLayout(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewUploadService(&ctxAwareRepo{fakeRepo: repo}, layout, &cancellingEncoder{cancel: cancel}, nil, 1<<20)

	_, err := svc.UploadStream(ctx, streamCommand("bytes"))
	if !errno.Is(err, errno.ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("record survived rollback after cancellation, store holds %d", len(repo.records))
	}
}

func TestUploadFromPathRollsBackOnCommitFailure(t *testing.T) {
	f := newUploadFixture(t, 1<<20)
	f.repo.failUpdate = true

	src := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(src, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.UploadFromPath(context.Background(), "clip", "", "owner-2", src)
	if !errno.Is(err, errno.ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
	if len(f.repo.records) != 0 {
		t.Fatal("metadata record survived rollback")
	}
}

func TestUploadStreamRollbackSurvivesDeleteFailure(t *testing.T) {
	f := newUploadFixture(t, 1<<20)
	f.encoder.err = errors.New("exit status 1")
	f.repo.failDelete = true

	_, err := f.svc.UploadStream(context.Background(), streamCommand("bytes"))
	if !errno.Is(err, errno.ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
}

func TestUploadFromPathCommitsWithFlatURL(t *testing.T) {
	f := newUploadFixture(t, 1<<20)

	src := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(src, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	video, err := f.svc.UploadFromPath(context.Background(), "clip", "", "owner-2", src)
	if err != nil {
		t.Fatalf("UploadFromPath: %v", err)
	}

	url := *video.URL()
	if strings.Contains(url, "/") {
		t.Fatalf("import url %q should be flat", url)
	}
	if !strings.HasSuffix(url, "_clip.mp4") {
		t.Fatalf("url %q does not keep the original filename", url)
	}
	if _, err := os.Stat(filepath.Join(f.layout.Root(), url)); err != nil {
		t.Fatalf("raw copy missing: %v", err)
	}

	if got, want := f.publisher.messages[0], "Video uploaded: clip"; got != want {
		t.Fatalf("event = %q, want %q", got, want)
	}
}

func TestUploadFromPathRollbackRemovesFlatCopy(t *testing.T) {
	f := newUploadFixture(t, 1<<20)
	f.encoder.err = errors.New("exit status 1")

	src := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(src, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.UploadFromPath(context.Background(), "clip", "", "owner-2", src)
	if !errno.Is(err, errno.ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}

	entries, err := os.ReadDir(f.layout.Root())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			t.Fatalf("flat raw copy %s survived rollback", e.Name())
		}
	}
	if len(f.repo.records) != 0 {
		t.Fatal("metadata record survived rollback")
	}
}

func TestUploadFromPathRejectsMissingFile(t *testing.T) {
	f := newUploadFixture(t, 1<<20)

	_, err := f.svc.UploadFromPath(context.Background(), "clip", "", "owner-2", filepath.Join(t.TempDir(), "absent.mp4"))
	if !errno.Is(err, errno.ErrInvalidParam) {
		t.Fatalf("err = %v, want ErrInvalidParam", err)
	}
	if f.repo.createCalls != 0 {
		t.Fatal("record created for missing file")
	}
}

func TestUniqueFilenamesDoNotCollide(t *testing.T) {
	a := uniqueFilename("same.mp4")
	b := uniqueFilename("same.mp4")
	if a == b {
		t.Fatalf("two uploads of the same file mapped to %q", a)
	}
	if !strings.HasSuffix(a, "_same.mp4") {
		t.Fatalf("generated name %q lost the original filename", a)
	}
}

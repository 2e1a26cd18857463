package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"video-ingest-service/ddd/domain/port"
	"video-ingest-service/ddd/domain/vo"
	"video-ingest-service/pkg/config"
	"video-ingest-service/pkg/logger"
)

const outputTailLines = 50

// FFmpegEncoder implements port.Encoder with one local ffmpeg process per
// job: the input is decoded once and split into every rendition through a
// single filter graph.
type FFmpegEncoder struct {
	cfg *config.Config
}

func NewFFmpegEncoder(cfg *config.Config) *FFmpegEncoder {
	if cfg == nil {
		cfg = config.GetGlobalConfig()
	}
	return &FFmpegEncoder{cfg: cfg}
}

func (e *FFmpegEncoder) Encode(ctx context.Context, inputPath, outputDir string, renditions []vo.Rendition) error {
	if len(renditions) == 0 {
		return errors.New("no renditions requested")
	}

	timeout := e.timeout()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.Command(e.binary(), buildArgs(inputPath, outputDir, renditions)...)
	logger.Infof("ffmpeg command input=%s command=%s", inputPath, strings.Join(cmd.Args, " "))

	// StdoutPipe hands back an *os.File, so stderr can share its write end
	// and the drain goroutine sees the combined output in order.
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create ffmpeg pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	drainDone := make(chan struct{})
	tail := make([]string, 0, outputTailLines)
	go func() {
		defer close(drainDone)
		drainOutput(pipe, &tail)
	}()

	// Wait closes the pipe under its reader, so it must not start until
	// the drain goroutine has seen EOF.
	done := make(chan error, 1)
	go func() {
		<-drainDone
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil {
			code := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			}
			out := strings.Join(tail, "\n")
			logger.Errorf("ffmpeg failed input=%s exit_code=%d tail_output=%s", inputPath, code, out)
			return &port.ExitError{Code: code, Output: out}
		}
		return nil
	}
}

func (e *FFmpegEncoder) binary() string {
	if e.cfg != nil && e.cfg.Transcode.FFmpeg.BinaryPath != "" {
		return e.cfg.Transcode.FFmpeg.BinaryPath
	}
	return "ffmpeg"
}

func (e *FFmpegEncoder) timeout() (d time.Duration) {
	if e.cfg != nil {
		d = e.cfg.Transcode.FFmpeg.Timeout
	}
	return
}

// drainOutput consumes the combined output so the process never blocks on
// a full pipe, keeping the last lines for diagnostics.
func drainOutput(pipe io.Reader, tail *[]string) {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		b := *tail
		if len(b) >= outputTailLines {
			b = b[1:]
		}
		b = append(b, scanner.Text())
		*tail = b
	}
}

// buildArgs assembles the single-invocation argument list: one split
// filter fans the decoded input out to a scaler per rendition, and each
// branch gets its own encoder and HLS muxer.
func buildArgs(inputPath, outputDir string, renditions []vo.Rendition) []string {
	args := []string{"-i", inputPath, "-filter_complex", buildFilterGraph(renditions)}

	for i, r := range renditions {
		args = append(args,
			"-map", fmt.Sprintf("[v%d]", i),
			"-c:v", "libx264",
			"-b:v", r.Bitrate(),
			"-maxrate", r.Bitrate(),
			"-bufsize", r.BufferSize(),
			"-hls_time", strconv.Itoa(vo.SegmentDurationSeconds),
			"-hls_playlist_type", "vod",
			"-hls_segment_filename", filepath.Join(outputDir, r.SegmentPattern()),
			filepath.Join(outputDir, r.ManifestName()),
		)
	}

	args = append(args, "-y")
	return args
}

func buildFilterGraph(renditions []vo.Rendition) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[0:v]split=%d", len(renditions)))
	for i := range renditions {
		sb.WriteString(fmt.Sprintf("[s%d]", i))
	}
	for i, r := range renditions {
		sb.WriteString(fmt.Sprintf("; [s%d]scale=%d:%d:force_original_aspect_ratio=decrease[v%d]",
			i, r.MaxWidth, r.MaxHeight, i))
	}
	return sb.String()
}

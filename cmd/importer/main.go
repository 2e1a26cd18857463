// Command importer ingests a server-local video file through the same
// pipeline as the HTTP upload endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"video-ingest-service/ddd/application/app"
	"video-ingest-service/ddd/application/cqe"
	"video-ingest-service/pkg/config"
	"video-ingest-service/pkg/logger"
	"video-ingest-service/pkg/manager"

	_ "video-ingest-service/internal/resource"
)

func main() {
	var (
		configPath  = flag.String("config", "configs/config.dev.yaml", "configuration file")
		title       = flag.String("title", "", "video title")
		description = flag.String("description", "", "video description")
		ownerUUID   = flag.String("owner", "", "owner user uuid")
		path        = flag.String("file", "", "path to the video file")
	)
	flag.Parse()

	if *title == "" || *ownerUUID == "" || *path == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -title <title> -owner <uuid> -file <path> [-description <text>] [-config <path>]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config %s: %v\n", *configPath, err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)

	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	defer logService.Close()

	manager.MustInitResources()
	defer manager.CloseResources()

	video, err := app.DefaultVideoApp().ImportVideo(context.Background(), &cqe.ImportVideoReq{
		Title:       *title,
		Description: *description,
		OwnerUUID:   *ownerUUID,
		Path:        *path,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("imported video_uuid=%s url=%s\n", video.VideoUUID, *video.URL)
}

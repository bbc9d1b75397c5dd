package app

import (
	"log"
	"time"

	"screencode/internal/gateway/config"
	artifactrepo "screencode/internal/gateway/repository/artifact"
	"screencode/internal/gateway/repository/runlog"
)

type gatewayStores struct {
	runs   runlog.Store
	images artifactrepo.ImageStore
}

func initStores(cfg *config.Config) *gatewayStores {
	return &gatewayStores{
		runs:   runlog.Open(cfg.RunLogDSN, cfg.LogsPath),
		images: newImageStore(cfg.Artifact),
	}
}

// newImageStore falls back to inline data URLs when object storage is
// disabled or misconfigured.
func newImageStore(cfg config.ArtifactConfig) artifactrepo.ImageStore {
	if !cfg.Enabled {
		return artifactrepo.InlineStore{}
	}
	s, err := artifactrepo.NewS3Store(artifactrepo.S3Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
		URLExpiry: 7 * 24 * time.Hour,
	})
	if err != nil {
		log.Printf("artifact store disabled, images will be inlined: %v", err)
		return artifactrepo.InlineStore{}
	}
	return s
}

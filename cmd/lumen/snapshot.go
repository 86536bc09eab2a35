package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taigrr/lumen/pkg/parallel"
)

// runSnapshot renders a single frame and writes it to cfg.Snapshot.
func runSnapshot(ctx context.Context, cfg *Config, log *slog.Logger) error {
	pool := parallel.New(cfg.Workers)

	mesh, err := loadMesh(cfg)
	if err != nil {
		return err
	}
	log.Info("model loaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	scene, err := buildScene(ctx, pool, cfg, mesh)
	if err != nil {
		return err
	}

	r := newRenderer(cfg, pool, cfg.Width, cfg.Height)
	st, err := r.RenderFrame(ctx, scene, homeCamera(cfg.Distance))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Debug("frame",
		"triangles", st.Triangles,
		"culled", st.TrianglesCulled,
		"fragments", st.Fragments,
		"accepted", st.FragmentsAccepted,
		"duration", st.Duration,
	)

	if err := r.Framebuffer().SavePNG(cfg.Snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	log.Info("snapshot written", "path", cfg.Snapshot, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "workers", pool.Workers())
	return nil
}

package main

import (
	"context"
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/parallel"
	"github.com/taigrr/lumen/pkg/render"
)

// loadMesh loads cfg.Model, or builds cfg.Primitive when no model is given.
func loadMesh(cfg *Config) (*models.Mesh, error) {
	switch {
	case cfg.Model != "":
	case cfg.Primitive == "cube":
		return models.Cube(1.5), nil
	default:
		return models.Icosphere(3), nil
	}
	mesh, err := models.Load(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return mesh, nil
}

// buildScene prepares mesh as the single object of a scene.
func buildScene(ctx context.Context, pool *parallel.Pool, cfg *Config, mesh *models.Mesh) (render.Scene, error) {
	base := mesh.BaseColor()
	if cfg.color != nil {
		base = *cfg.color
	}
	mat := render.DefaultMaterial(base)
	mat.Shininess = cfg.Shininess

	obj, err := render.PrepareObject(ctx, pool, render.Object{
		Name:     mesh.Name,
		Mesh:     mesh.Geometry(),
		Model:    math3d.Identity(),
		Material: mat,
	})
	if err != nil {
		return render.Scene{}, err
	}
	return render.Scene{
		Objects: []*render.PreparedObject{obj},
		Light:   render.DefaultLight(),
	}, nil
}

// homeCamera is the starting view: on the +z axis looking at the origin.
func homeCamera(distance float64) render.Camera {
	return render.NewCamera(math3d.V3(0, 0, distance), math3d.Vec3{}, math3d.Up())
}

// newRenderer creates a renderer configured from cfg.
func newRenderer(cfg *Config, pool *parallel.Pool, width, height int) *render.Renderer {
	r := render.NewRenderer(width, height, pool)
	r.Mode = cfg.mode
	r.Background = cfg.bg
	r.Projection.FOV = cfg.FOV * math.Pi / 180
	return r
}

package render

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/parallel"
)

// square is a 2x2 quad in the plane z, facing +z.
func square(z float64) geometry.Mesh {
	return geometry.Mesh{
		Positions: []float64{
			-1, -1, z,
			1, -1, z,
			1, 1, z,
			-1, 1, z,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func prepare(t testing.TB, name string, mesh geometry.Mesh, model math3d.Mat4, base math3d.Vec3) *PreparedObject {
	t.Helper()
	obj, err := PrepareObject(context.Background(), parallel.New(2), Object{
		Name:     name,
		Mesh:     mesh,
		Model:    model,
		Material: DefaultMaterial(base),
	})
	if err != nil {
		t.Fatalf("PrepareObject(%s): %v", name, err)
	}
	return obj
}

func frontCamera() Camera {
	return NewCamera(math3d.V3(0, 0, 5), math3d.Vec3{}, math3d.Up())
}

func TestRenderFrameQuad(t *testing.T) {
	r := NewRenderer(32, 32, parallel.New(2))
	scene := Scene{
		Objects: []*PreparedObject{prepare(t, "quad", square(0), math3d.Identity(), math3d.V3(1, 0, 0))},
		Light:   DefaultLight(),
	}

	st, err := r.RenderFrame(context.Background(), scene, frontCamera())
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if st.Objects != 1 || st.ObjectsCulled != 0 {
		t.Errorf("objects = %d (culled %d), want 1 (0)", st.Objects, st.ObjectsCulled)
	}
	if st.Triangles != 2 || st.TrianglesCulled != 0 {
		t.Errorf("triangles = %d (culled %d), want 2 (0)", st.Triangles, st.TrianglesCulled)
	}
	if st.FragmentsAccepted == 0 {
		t.Fatal("no fragments survived")
	}
	// The two halves share a diagonal; no pixel may be drawn twice.
	if st.Fragments != st.FragmentsAccepted {
		t.Errorf("fragments = %d, accepted = %d", st.Fragments, st.FragmentsAccepted)
	}

	fb := r.Framebuffer()
	if got := fb.GetPixel(16, 16); got == r.Background || got.R == 0 {
		t.Errorf("center pixel = %v, want lit red", got)
	}
	if got := fb.GetPixel(0, 0); got != r.Background {
		t.Errorf("corner pixel = %v, want background", got)
	}

	d, err := r.Depth().At(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("center depth = %v, want 5", d)
	}
}

func TestRenderFrameDepthOrder(t *testing.T) {
	near := func(t *testing.T) *PreparedObject {
		return prepare(t, "near", square(1), math3d.Identity(), math3d.V3(1, 0, 0))
	}
	far := func(t *testing.T) *PreparedObject {
		return prepare(t, "far", square(-1), math3d.Identity(), math3d.V3(0, 0, 1))
	}

	tests := []struct {
		name  string
		order func(t *testing.T) []*PreparedObject
	}{
		{"near first", func(t *testing.T) []*PreparedObject { return []*PreparedObject{near(t), far(t)} }},
		{"far first", func(t *testing.T) []*PreparedObject { return []*PreparedObject{far(t), near(t)} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRenderer(32, 32, parallel.New(4))
			scene := Scene{Objects: tc.order(t), Light: DefaultLight()}
			if _, err := r.RenderFrame(context.Background(), scene, frontCamera()); err != nil {
				t.Fatalf("RenderFrame: %v", err)
			}
			if got := r.Framebuffer().GetPixel(16, 16); got.R <= got.B {
				t.Errorf("center pixel = %v, want the near (red) quad", got)
			}
			if d, _ := r.Depth().At(16, 16); math.Abs(d-4) > 1e-9 {
				t.Errorf("center depth = %v, want 4", d)
			}
		})
	}
}

func TestRenderFrameTieGoesToFirst(t *testing.T) {
	first := prepare(t, "first", square(0), math3d.Identity(), math3d.V3(1, 0, 0))
	second := prepare(t, "second", square(0), math3d.Identity(), math3d.V3(0, 0, 1))
	scene := Scene{Objects: []*PreparedObject{first, second}, Light: DefaultLight()}

	var frames [][]uint8
	for _, workers := range []int{1, 3, 8} {
		r := NewRenderer(24, 24, parallel.New(workers))
		st, err := r.RenderFrame(context.Background(), scene, frontCamera())
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if st.Fragments != 2*st.FragmentsAccepted {
			t.Errorf("workers=%d: fragments = %d, accepted = %d", workers, st.Fragments, st.FragmentsAccepted)
		}
		if got := r.Framebuffer().GetPixel(12, 12); got.R <= got.B {
			t.Errorf("workers=%d: center pixel = %v, want the first (red) quad", workers, got)
		}

		var px []uint8
		for _, p := range r.Framebuffer().Pixels {
			px = append(px, p.R, p.G, p.B, p.A)
		}
		frames = append(frames, px)
	}

	for i := 1; i < len(frames); i++ {
		if string(frames[i]) != string(frames[0]) {
			t.Errorf("frame %d differs from frame 0", i)
		}
	}
}

func TestRenderFrameCulling(t *testing.T) {
	t.Run("back faces", func(t *testing.T) {
		mesh := square(0)
		mesh.Indices = []uint32{0, 2, 1, 0, 3, 2}

		r := NewRenderer(32, 32, parallel.New(2))
		scene := Scene{
			Objects: []*PreparedObject{prepare(t, "back", mesh, math3d.Identity(), math3d.V3(1, 1, 1))},
			Light:   DefaultLight(),
		}
		st, err := r.RenderFrame(context.Background(), scene, frontCamera())
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if st.Fragments != 0 {
			t.Errorf("back-facing quad produced %d fragments", st.Fragments)
		}
		for i, p := range r.Framebuffer().Pixels {
			if p != r.Background {
				t.Fatalf("pixel %d = %v, want background", i, p)
			}
		}
	})

	t.Run("behind the camera", func(t *testing.T) {
		r := NewRenderer(32, 32, parallel.New(2))
		model := math3d.Translate(math3d.V3(0, 0, 10))
		scene := Scene{
			Objects: []*PreparedObject{prepare(t, "behind", square(0), model, math3d.V3(1, 1, 1))},
			Light:   DefaultLight(),
		}
		st, err := r.RenderFrame(context.Background(), scene, frontCamera())
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if st.ObjectsCulled != 1 || st.Triangles != 0 {
			t.Errorf("stats = %+v, want the object culled whole", st)
		}
	})

	t.Run("straddling the eye plane", func(t *testing.T) {
		// A long strip from in front of the eye to behind it: the frustum
		// test keeps the object, then its triangles are dropped.
		mesh := geometry.Mesh{
			Positions: []float64{
				-1, -1, 0,
				1, -1, 0,
				1, -1, 20,
				-1, -1, 20,
			},
			Indices: []uint32{0, 3, 2, 0, 2, 1},
		}
		r := NewRenderer(32, 32, parallel.New(2))
		scene := Scene{
			Objects: []*PreparedObject{prepare(t, "strip", mesh, math3d.Identity(), math3d.V3(1, 1, 1))},
			Light:   DefaultLight(),
		}
		st, err := r.RenderFrame(context.Background(), scene, frontCamera())
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if st.ObjectsCulled != 0 || st.TrianglesCulled != 2 {
			t.Errorf("stats = %+v, want both triangles culled", st)
		}
	})
}

func TestRenderFrameModes(t *testing.T) {
	base := math3d.V3(1, 0, 0)
	scene := Scene{
		Objects: []*PreparedObject{prepare(t, "quad", square(0), math3d.Identity(), base)},
		Light:   DefaultLight(),
	}

	t.Run("gouraud", func(t *testing.T) {
		r := NewRenderer(32, 32, parallel.New(2))
		r.Mode = ShadingGouraud
		st, err := r.RenderFrame(context.Background(), scene, frontCamera())
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if st.FragmentsAccepted == 0 {
			t.Fatal("no fragments survived")
		}
		if got := r.Framebuffer().GetPixel(16, 16); got == r.Background || got.R == 0 {
			t.Errorf("center pixel = %v, want lit red", got)
		}
	})

	t.Run("wireframe", func(t *testing.T) {
		r := NewRenderer(32, 32, parallel.New(2))
		r.Mode = ShadingWireframe
		st, err := r.RenderFrame(context.Background(), scene, frontCamera())
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if st.Fragments != 0 {
			t.Errorf("wireframe rasterized %d fragments", st.Fragments)
		}
		lines := 0
		for _, p := range r.Framebuffer().Pixels {
			if p == ToRGB(base) {
				lines++
			}
		}
		if lines == 0 {
			t.Error("no edges drawn")
		}
		if got := r.Framebuffer().GetPixel(13, 20); got != r.Background {
			t.Errorf("pixel inside a face = %v, want background", got)
		}
	})
}

func TestRenderFrameCanceled(t *testing.T) {
	r := NewRenderer(16, 16, parallel.New(2))
	scene := Scene{
		Objects: []*PreparedObject{prepare(t, "quad", square(0), math3d.Identity(), math3d.V3(1, 1, 1))},
		Light:   DefaultLight(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RenderFrame(ctx, scene, frontCamera()); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestPrepareObjectErrors(t *testing.T) {
	ctx := context.Background()
	pool := parallel.New(2)

	_, err := PrepareObject(ctx, pool, Object{Name: "short", Mesh: geometry.Mesh{Positions: []float64{0, 0, 0, 1}}})
	if !errors.Is(err, geometry.ErrMalformedMesh) {
		t.Errorf("got %v, want ErrMalformedMesh", err)
	}

	loose := square(0)
	loose.Positions = append(loose.Positions, 5, 5, 5)
	_, err = PrepareObject(ctx, pool, Object{Name: "loose", Mesh: loose})
	if !errors.Is(err, geometry.ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestPreparedObjectBounds(t *testing.T) {
	obj := prepare(t, "quad", square(0.5), math3d.Identity(), math3d.V3(1, 1, 1))
	want := NewAABB(math3d.V3(-1, -1, 0.5), math3d.V3(1, 1, 0.5))
	if got := obj.Bounds(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRendererResize(t *testing.T) {
	r := NewRenderer(8, 8, parallel.New(1))
	r.Projection.FOV = math.Pi / 4

	r.Resize(10, 4)
	if fb := r.Framebuffer(); fb.Width != 10 || fb.Height != 4 {
		t.Errorf("framebuffer = %dx%d, want 10x4", fb.Width, fb.Height)
	}
	if z := r.Depth(); z.Width != 10 || z.Height != 4 {
		t.Errorf("z-buffer = %dx%d, want 10x4", z.Width, z.Height)
	}
	if r.Projection.Aspect != 2.5 {
		t.Errorf("aspect = %v, want 2.5", r.Projection.Aspect)
	}
	if r.Projection.FOV != math.Pi/4 {
		t.Errorf("FOV reset to %v", r.Projection.FOV)
	}

	r.Resize(0, -3)
	if fb := r.Framebuffer(); fb.Width != 1 || fb.Height != 1 {
		t.Errorf("framebuffer = %dx%d, want 1x1", fb.Width, fb.Height)
	}
}

func BenchmarkRenderFrame(b *testing.B) {
	r := NewRenderer(160, 90, parallel.New(0))
	scene := Scene{
		Objects: []*PreparedObject{
			prepare(b, "near", square(1), math3d.RotateY(0.4), math3d.V3(1, 0.5, 0.2)),
			prepare(b, "far", square(-1), math3d.RotateX(0.3), math3d.V3(0.2, 0.5, 1)),
		},
		Light: DefaultLight(),
	}
	cam := frontCamera()
	ctx := context.Background()

	for b.Loop() {
		_, _ = r.RenderFrame(ctx, scene, cam)
	}
}

package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/parallel"
)

// Object is a mesh placed in the world.
type Object struct {
	Name     string
	Mesh     geometry.Mesh
	Model    math3d.Mat4
	Material Material
}

// PreparedObject caches the object-space vertices, normals and bounds of
// an Object. They depend only on the mesh, so they are computed once and
// reused every frame; Model and Material may still change between frames.
type PreparedObject struct {
	Object

	vertices []geometry.Vertex
	normals  []geometry.Normal
	bounds   AABB
}

// PrepareObject validates the mesh and computes its object-space data.
func PrepareObject(ctx context.Context, pool *parallel.Pool, obj Object) (*PreparedObject, error) {
	if err := obj.Mesh.Validate(); err != nil {
		return nil, fmt.Errorf("prepare %q: %w", obj.Name, err)
	}
	verts, err := geometry.ObjectVertices(ctx, pool, obj.Mesh.Positions)
	if err != nil {
		return nil, fmt.Errorf("prepare %q: %w", obj.Name, err)
	}
	adj, err := geometry.BuildAdjacency(obj.Mesh.Indices, len(verts))
	if err != nil {
		return nil, fmt.Errorf("prepare %q: %w", obj.Name, err)
	}
	normals, err := geometry.VertexNormals(ctx, pool, verts, adj)
	if err != nil {
		return nil, fmt.Errorf("prepare %q: %w", obj.Name, err)
	}

	points := make([]math3d.Vec3, len(verts))
	for i, v := range verts {
		points[i] = v.Position.Vec3()
	}

	return &PreparedObject{
		Object:   obj,
		vertices: verts,
		normals:  normals,
		bounds:   BoundsOf(points),
	}, nil
}

// Bounds returns the object-space bounding box.
func (p *PreparedObject) Bounds() AABB {
	return p.bounds
}

// Scene is everything drawn in one frame.
type Scene struct {
	Objects []*PreparedObject
	Light   Light
}

// Stats describes one rendered frame.
type Stats struct {
	Objects           int
	ObjectsCulled     int // rejected by the view frustum as a whole
	Triangles         int
	TrianglesCulled   int // behind the eye or outside one clip plane
	Fragments         int
	FragmentsAccepted int // passed the depth test when folded
	Duration          time.Duration
}

// Renderer owns the per-frame buffers. It is not safe for concurrent use;
// parallelism happens inside RenderFrame.
type Renderer struct {
	Mode       ShadingMode
	Background color.RGBA
	Projection Projection

	pool   *parallel.Pool
	raster Rasterizer
	zbuf   *ZBuffer
	fb     *Framebuffer

	// Per-pixel winner of the depth fold, indexed like the z-buffer.
	owner   []int32
	surface []Surface
	color   []math3d.Vec3
}

// NewRenderer creates a renderer for a width x height framebuffer.
func NewRenderer(width, height int, pool *parallel.Pool) *Renderer {
	r := &Renderer{
		Background: ColorBlack,
		pool:       pool,
		zbuf:       NewZBuffer(0, 0),
		fb:         NewFramebuffer(0, 0),
	}
	r.Resize(width, height)
	return r
}

// Resize reallocates every buffer and updates the projection's aspect.
func (r *Renderer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)

	aspect := float64(width) / float64(height)
	if r.Projection == (Projection{}) {
		r.Projection = DefaultProjection(aspect)
	} else {
		r.Projection.Aspect = aspect
	}

	r.raster.Width, r.raster.Height = width, height
	r.zbuf.Resize(width, height)
	r.fb = NewFramebuffer(width, height)
	r.owner = make([]int32, width*height)
	r.surface = make([]Surface, width*height)
	r.color = make([]math3d.Vec3, width*height)
}

// Framebuffer returns the image of the last frame.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Depth returns the z-buffer of the last frame.
func (r *Renderer) Depth() *ZBuffer {
	return r.zbuf
}

// RenderFrame draws scene as seen from cam into the framebuffer.
//
// Vertex stages and rasterization run on the pool. Fragments are then
// folded into the z-buffer on this goroutine in object and triangle order,
// so the nearest fragment wins and ties go to the earlier triangle no
// matter how the workers were scheduled. Survivors are shaded in parallel.
func (r *Renderer) RenderFrame(ctx context.Context, scene Scene, cam Camera) (Stats, error) {
	start := time.Now()
	var st Stats

	r.raster.Projection = r.Projection.Matrix()
	r.zbuf.Reset(math.MaxFloat64)
	r.fb.Clear(r.Background)
	for i := range r.owner {
		r.owner[i] = -1
	}

	frustum := NewCameraFrustum(r.Projection, cam)
	lightEye := cam.View.MulVec3(scene.Light.Position)

	for i, obj := range scene.Objects {
		st.Objects++
		if !frustum.IntersectAABB(obj.bounds.Transform(obj.Model)) {
			st.ObjectsCulled++
			continue
		}
		if err := r.drawObject(ctx, int32(i), obj, cam, lightEye, scene.Light, &st); err != nil {
			return st, fmt.Errorf("render %q: %w", obj.Name, err)
		}
	}

	if r.Mode != ShadingWireframe {
		if err := r.resolve(ctx, scene, lightEye); err != nil {
			return st, err
		}
	}

	st.Duration = time.Since(start)
	return st, nil
}

func (r *Renderer) drawObject(ctx context.Context, idx int32, obj *PreparedObject, cam Camera, lightEye math3d.Vec3, light Light, st *Stats) error {
	world, err := geometry.ToWorld(ctx, r.pool, obj.vertices, obj.Model)
	if err != nil {
		return err
	}
	eye, err := geometry.ToEye(ctx, r.pool, world, cam.View)
	if err != nil {
		return err
	}
	worldN, err := geometry.TransformNormals(ctx, r.pool, obj.normals, obj.Model)
	if err != nil {
		return err
	}
	eyeN, err := geometry.TransformNormals(ctx, r.pool, worldN, cam.View)
	if err != nil {
		return err
	}
	tris, err := geometry.Triangles(obj.Mesh.Indices, eye, eyeN)
	if err != nil {
		return err
	}
	device, err := parallel.Map(ctx, r.pool, eye, func(v geometry.Vertex) DeviceVertex {
		return r.raster.Project(v.Position)
	})
	if err != nil {
		return err
	}
	st.Triangles += len(tris)

	switch r.Mode {
	case ShadingWireframe:
		c := ToRGB(obj.Material.Diffuse)
		prims, culled := buildPrimitives(tris, device, func(geometry.Corner) math3d.Vec3 { return math3d.Vec3{} })
		st.TrianglesCulled += culled
		for _, p := range prims {
			if p.Area() > 0 {
				r.fb.DrawTriangleEdges(p.V, c)
			}
		}
		return nil

	case ShadingGouraud:
		colors := make([]math3d.Vec3, len(eye))
		err := r.pool.For(ctx, len(eye), func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				s := Surface{Normal: eyeN[i].Vec.Vec3(), Position: eye[i].Position.Vec3()}
				colors[i] = ShadeSurface(s, lightEye, obj.Material, light)
			}
			return nil
		})
		if err != nil {
			return err
		}

		prims, culled := buildPrimitives(tris, device, func(c geometry.Corner) math3d.Vec3 {
			return colors[c.Vertex.Index]
		})
		st.TrianglesCulled += culled
		frags, err := RasterizeAll(ctx, r.pool, &r.raster, prims)
		if err != nil {
			return err
		}
		total, accepted := foldFragments(r.zbuf, frags, func(i int, f Fragment[math3d.Vec3]) {
			r.owner[i] = idx
			r.color[i] = f.Attr
		})
		st.Fragments += total
		st.FragmentsAccepted += accepted

	default:
		prims, culled := buildPrimitives(tris, device, func(c geometry.Corner) Surface {
			return Surface{Normal: c.Normal.Vec.Vec3(), Position: c.Vertex.Position.Vec3()}
		})
		st.TrianglesCulled += culled
		frags, err := RasterizeAll(ctx, r.pool, &r.raster, prims)
		if err != nil {
			return err
		}
		total, accepted := foldFragments(r.zbuf, frags, func(i int, f Fragment[Surface]) {
			r.owner[i] = idx
			r.surface[i] = f.Attr
		})
		st.Fragments += total
		st.FragmentsAccepted += accepted
	}
	return nil
}

// buildPrimitives projects the triangles that survive culling. device is
// indexed by vertex index.
func buildPrimitives[T Attribute[T]](tris []geometry.Triangle, device []DeviceVertex, attr func(geometry.Corner) T) (prims []Primitive[T], culled int) {
	prims = make([]Primitive[T], 0, len(tris))
	for _, t := range tris {
		var (
			p   Primitive[T]
			eye [3]math3d.Vec4
		)
		for c, corner := range t.Corners {
			p.V[c] = device[corner.Vertex.Index]
			p.Attr[c] = attr(corner)
			eye[c] = corner.Vertex.Position
		}
		if Culled(eye, p.V) {
			culled++
			continue
		}
		prims = append(prims, p)
	}
	return prims, culled
}

// foldFragments runs the depth test over frags in order and calls keep
// for every fragment that becomes the new nearest at its pixel.
func foldFragments[T any](z *ZBuffer, frags [][]Fragment[T], keep func(i int, f Fragment[T])) (total, accepted int) {
	for _, tri := range frags {
		total += len(tri)
		for _, f := range tri {
			if z.Update(f.X, f.Y, f.Depth) {
				keep(f.Y*z.Width+f.X, f)
				accepted++
			}
		}
	}
	return total, accepted
}

// resolve shades every pixel that kept a fragment and writes it to the
// framebuffer. Pixels are disjoint, so workers never share a write.
func (r *Renderer) resolve(ctx context.Context, scene Scene, lightEye math3d.Vec3) error {
	w := r.raster.Width
	return r.pool.For(ctx, len(r.owner), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			o := r.owner[i]
			if o < 0 {
				continue
			}
			var c math3d.Vec3
			if r.Mode == ShadingGouraud {
				c = r.color[i]
			} else {
				c = ShadeSurface(r.surface[i], lightEye, scene.Objects[o].Material, scene.Light)
			}
			r.fb.SetDevicePixel(i%w, i/w, ToRGB(c))
		}
		return nil
	})
}

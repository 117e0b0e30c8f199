// meshinfo 并发解析 OBJ 地面网格并打印统计信息
//
// 用法:
//
//	go run ./cmd/meshinfo assets/meshes/terrain.obj --samples 5
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/stickwalk/internal/obj"
)

var CLI struct {
	Files   []string `arg:"" help:"OBJ files to inspect."`
	Samples int      `help:"Sample the ground height on an NxN grid over each mesh." default:"3"`
	Jobs    int      `help:"Maximum number of files parsed at once." default:"4"`
}

// report 一个网格文件的统计结果
type report struct {
	Path    string
	Mesh    *obj.Mesh
	Edges   int
	Samples []sample
}

// sample 一次向下射线采样
type sample struct {
	X, Z   float64
	Height float64
	Hit    bool
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	kong.Parse(&CLI,
		kong.Name("meshinfo"),
		kong.Description("inspect Wavefront OBJ ground meshes"),
		kong.UsageOnError())

	reports, err := inspectAll(context.Background(), CLI.Files, CLI.Samples, CLI.Jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	for _, r := range reports {
		writeReport(os.Stdout, r)
	}
}

// inspectAll 并发解析 files，结果顺序与输入一致
// 任一文件失败时返回第一个错误
func inspectAll(ctx context.Context, files []string, samples, jobs int) ([]report, error) {
	reports := make([]report, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			mesh, err := obj.ParseFile(file)
			if err != nil {
				return err
			}
			reports[i] = inspect(file, mesh, samples)
			log.Debug().Str("file", file).Dur("took", time.Since(start)).Msg("[MeshInfo] parsed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// inspect 统计网格并在包围盒 XZ 范围内采样 n×n 个高度
func inspect(path string, mesh *obj.Mesh, n int) report {
	r := report{Path: path, Mesh: mesh, Edges: len(mesh.Edges())}
	if n <= 0 || len(mesh.Triangles) == 0 {
		return r
	}
	b := mesh.Bounds
	top := b.Max.Y() + 1
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := gridCoord(b.Min.X(), b.Max.X(), i, n)
			z := gridCoord(b.Min.Z(), b.Max.Z(), j, n)
			s := sample{X: x, Z: z}
			if hit, ok := mesh.CastDown(mgl64.Vec3{x, top, z}); ok {
				s.Height = hit.Point.Y()
				s.Hit = true
			}
			r.Samples = append(r.Samples, s)
		}
	}
	return r
}

// gridCoord 把 [lo,hi] 均分为 n 格，返回第 i 格的中心
func gridCoord(lo, hi float64, i, n int) float64 {
	return lo + (hi-lo)*(float64(i)+0.5)/float64(n)
}

func writeReport(w io.Writer, r report) {
	m := r.Mesh
	fmt.Fprintf(w, "%s (%s)\n", r.Path, m.Name)
	fmt.Fprintf(w, "  vertices:  %d\n", len(m.Vertices))
	fmt.Fprintf(w, "  triangles: %d\n", len(m.Triangles))
	fmt.Fprintf(w, "  edges:     %d\n", r.Edges)
	fmt.Fprintf(w, "  bounds:    (%.3f %.3f %.3f) - (%.3f %.3f %.3f)\n",
		m.Bounds.Min.X(), m.Bounds.Min.Y(), m.Bounds.Min.Z(),
		m.Bounds.Max.X(), m.Bounds.Max.Y(), m.Bounds.Max.Z())
	for _, s := range r.Samples {
		if s.Hit {
			fmt.Fprintf(w, "  height(%.2f, %.2f) = %.3f\n", s.X, s.Z, s.Height)
		} else {
			fmt.Fprintf(w, "  height(%.2f, %.2f) = miss\n", s.X, s.Z)
		}
	}
}

// simulate 无窗口运行运动控制器并打印轨迹
//
// 用法:
//
//	go run ./cmd/simulate -p terrain --script 'forward+run:120,jump,idle:60' --every 10
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/internal/obj"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

var CLI struct {
	Profile string `help:"Locomotion profile to simulate." short:"p"`
	Config  string `help:"Locomotion profiles file." default:"data/locomotion.yaml"`
	Mesh    string `help:"Override the profile ground with this OBJ file."`
	Script  string `help:"Input script, e.g. 'forward:60,left+forward:30,jump'." default:"forward:60"`
	Frames  int    `help:"Frames to simulate; 0 runs the script to its end."`
	Every   int    `help:"Print one trace line every N frames." default:"10"`
	Parity  bool   `help:"Use fixed per-frame steps."`
	Verbose bool   `help:"Enable debug logging." short:"v"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("simulate"),
		kong.Description("run the locomotion controller headlessly and print its trace"),
		kong.UsageOnError())

	if CLI.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer) error {
	profiles, err := config.LoadLocomotionProfiles(CLI.Config)
	if err != nil {
		return err
	}
	name := CLI.Profile
	if name == "" {
		name = profiles.Default
	}
	p, err := profiles.Profile(name)
	if err != nil {
		return err
	}
	profile := *p
	if CLI.Mesh != "" {
		profile.Surface.Type = config.SurfaceMesh
		profile.Surface.Mesh = CLI.Mesh
	}
	if CLI.Parity {
		profile.Locomotion.StepMode = config.StepModeFixed
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	script, err := locomotion.ParseInputScript(CLI.Script)
	if err != nil {
		return err
	}

	surface, err := openSurface(profile.Surface)
	if err != nil {
		return err
	}

	frames := CLI.Frames
	if frames <= 0 {
		frames = script.TotalFrames()
	}
	log.Info().Str("profile", profile.Name).Int("frames", frames).Str("stepMode", string(profile.Locomotion.StepMode)).Msg("[Simulate] start")

	ctrl := locomotion.NewController(profile.Locomotion, mgl64.Vec3(profile.Spawn))
	last := simulate(ctrl, surface, script, frames, CLI.Every, func(frame int, pose locomotion.Pose) {
		writeTrace(w, frame, pose)
		log.Debug().Int("frame", frame).Interface("joints", pose.Joints.Map()).Msg("[Simulate] joints")
	})

	log.Info().
		Float64("x", last.Transform.Position.X()).
		Float64("y", last.Transform.Position.Y()).
		Float64("z", last.Transform.Position.Z()).
		Bool("grounded", last.Flags.Grounded).
		Msg("[Simulate] done")
	return nil
}

// openSurface 同步加载地面；网格路径相对当前工作目录
func openSurface(cfg config.SurfaceConfig) (locomotion.SurfaceProvider, error) {
	surface := locomotion.NewSurface(cfg)
	ms, ok := surface.(*locomotion.MeshSurface)
	if !ok {
		return surface, nil
	}
	mesh, err := obj.ParseFile(cfg.Mesh)
	if err != nil {
		return nil, fmt.Errorf("failed to load ground mesh: %w", err)
	}
	ms.SetMesh(mesh)
	log.Debug().Str("mesh", cfg.Mesh).Int("triangles", len(mesh.Triangles)).Msg("[Simulate] ground mesh loaded")
	return ms, nil
}

// simulate 以参考帧时间推进控制器 frames 帧
// 每 every 帧以及最后一帧调用一次 emit，返回最后一帧的姿态
func simulate(ctrl *locomotion.Controller, surface locomotion.SurfaceProvider, script locomotion.InputScript, frames, every int, emit func(int, locomotion.Pose)) locomotion.Pose {
	if every <= 0 {
		every = 1
	}
	var pose locomotion.Pose
	for i := 0; i < frames; i++ {
		tick := locomotion.Tick{
			Elapsed: float64(i+1) * config.ReferenceFrameTime,
			Delta:   config.ReferenceFrameTime,
		}
		pose = ctrl.Update(tick, script.At(i), surface)
		if emit != nil && ((i+1)%every == 0 || i == frames-1) {
			emit(i+1, pose)
		}
	}
	return pose
}

func writeTrace(w io.Writer, frame int, pose locomotion.Pose) {
	pos := pose.Transform.Position
	state := "air"
	if pose.Flags.Grounded {
		state = "ground"
	}
	if pose.Stalled {
		state = "stalled"
	}
	fmt.Fprintf(w, "%5d  pos=(%7.3f %7.3f %7.3f)  yaw=%7.2f  vy=%7.4f  %-7s  ground=%6.3f\n",
		frame, pos.X(), pos.Y(), pos.Z(),
		yawDegrees(pose.Transform.Yaw),
		pose.Velocity.Y, state, pose.GroundLevel)
}

// yawDegrees 把偏航角换算为 [0,360) 度，仅用于显示
func yawDegrees(yaw float64) float64 {
	d := math.Mod(mgl64.RadToDeg(yaw), 360)
	if d < 0 {
		d += 360
	}
	return d
}

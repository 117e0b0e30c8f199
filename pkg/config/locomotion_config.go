package config

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decker502/stickwalk/pkg/embedded"
)

// DefaultProfilesPath 是内置角色配置文件路径
const DefaultProfilesPath = "data/locomotion.yaml"

// ErrUnknownProfile 表示请求的配置档不存在
var ErrUnknownProfile = errors.New("unknown locomotion profile")

// StepMode 决定每帧常量如何随时间推进
type StepMode string

const (
	// StepModeScaled 每帧常量按 Delta/ReferenceFrameTime 缩放（默认，与帧率无关）
	StepModeScaled StepMode = "scaled"
	// StepModeFixed 每次调用推进固定步长，与帧率耦合（复现原始行为）
	StepModeFixed StepMode = "fixed"
)

// SurfaceType 地面类型
type SurfaceType string

const (
	// SurfacePlane 常量高度的平面
	SurfacePlane SurfaceType = "plane"
	// SurfaceMesh 异步加载的静态网格，使用向下射线求交
	SurfaceMesh SurfaceType = "mesh"
)

// LocomotionConfig 角色运动参数
//
// 所有速度、加速度和阻尼都以"每参考帧"（1/60 秒）为单位。
// 加载后在进程生命周期内不可变。
type LocomotionConfig struct {
	// Gravity 每帧重力加速度（必须为负值）
	Gravity float64 `yaml:"gravity"`
	// WalkSpeed 行走时每帧位移
	WalkSpeed float64 `yaml:"walkSpeed"`
	// RunSpeed 奔跑时每帧位移
	RunSpeed float64 `yaml:"runSpeed"`
	// BackwardFactor 后退速度系数
	BackwardFactor float64 `yaml:"backwardFactor"`
	// TurnSpeed 每帧转向角度（弧度）
	TurnSpeed float64 `yaml:"turnSpeed"`
	// JumpImpulse 起跳时施加的一次性竖直速度
	JumpImpulse float64 `yaml:"jumpImpulse"`

	// WalkFrequency / RunFrequency 步态相位频率（弧度/秒）
	WalkFrequency float64 `yaml:"walkFrequency"`
	RunFrequency  float64 `yaml:"runFrequency"`
	// WalkAmplitude / RunAmplitude 肢体摆动幅度（弧度）
	WalkAmplitude float64 `yaml:"walkAmplitude"`
	RunAmplitude  float64 `yaml:"runAmplitude"`
	// SmoothingFactor 静止时关节回到静息姿态的每帧插值系数
	SmoothingFactor float64 `yaml:"smoothingFactor"`
	// BobAmplitude 行走时身体上下起伏幅度
	BobAmplitude float64 `yaml:"bobAmplitude"`

	// GroundHeight 平面地面高度，也是初始静息高度
	GroundHeight float64 `yaml:"groundHeight"`
	// StepMode 时间推进方式
	StepMode StepMode `yaml:"stepMode"`
	// StallThreshold 地面未加载且持续滞空超过该秒数时视为地面不可用
	StallThreshold float64 `yaml:"stallThreshold"`
}

// SurfaceConfig 地面配置
type SurfaceConfig struct {
	// Type 地面类型: "plane" 或 "mesh"
	Type SurfaceType `yaml:"type"`
	// Height 平面高度（仅 plane）
	Height float64 `yaml:"height"`
	// Mesh 网格资源路径（仅 mesh），如 "assets/meshes/terrain.obj"
	Mesh string `yaml:"mesh"`
	// RayOffset 射线起点相对角色位置的向上偏移
	RayOffset float64 `yaml:"rayOffset"`
	// Epsilon 接触判定容差
	Epsilon float64 `yaml:"epsilon"`
}

// CameraConfig 轨道相机初始参数（角度单位为度）
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Azimuth   float64 `yaml:"azimuth"`
	Elevation float64 `yaml:"elevation"`
	FovY      float64 `yaml:"fovY"`
}

// Profile 一套完整的运行配置
type Profile struct {
	// Name 配置档名称（取自 yaml 中的键）
	Name        string           `yaml:"-"`
	Description string           `yaml:"description"`
	Locomotion  LocomotionConfig `yaml:"locomotion"`
	Surface     SurfaceConfig    `yaml:"surface"`
	// Spawn 出生点 [x, y, z]
	Spawn  [3]float64   `yaml:"spawn"`
	Camera CameraConfig `yaml:"camera"`
}

// ProfileSet 配置文件的顶层结构
type ProfileSet struct {
	// Default 未指定配置档时使用的名称
	Default  string              `yaml:"default"`
	Profiles map[string]*Profile `yaml:"profiles"`
}

// DefaultLocomotionConfig 返回默认运动参数
func DefaultLocomotionConfig() LocomotionConfig {
	return LocomotionConfig{
		Gravity:         -0.015,
		WalkSpeed:       0.05,
		RunSpeed:        0.12,
		BackwardFactor:  0.6,
		TurnSpeed:       0.04,
		JumpImpulse:     0.3,
		WalkFrequency:   6,
		RunFrequency:    10,
		WalkAmplitude:   0.5,
		RunAmplitude:    0.9,
		SmoothingFactor: 0.1,
		BobAmplitude:    0.05,
		GroundHeight:    0,
		StepMode:        StepModeScaled,
		StallThreshold:  2,
	}
}

// DefaultProfile 返回平面地面的默认配置档
func DefaultProfile() Profile {
	return Profile{
		Name:       "plane",
		Locomotion: DefaultLocomotionConfig(),
		Surface: SurfaceConfig{
			Type:      SurfacePlane,
			RayOffset: 1.0,
			Epsilon:   0.1,
		},
		Camera: CameraConfig{
			Distance:  8,
			Azimuth:   180,
			Elevation: 25,
			FovY:      60,
		},
	}
}

// UnmarshalYAML 先填充默认值，再用 yaml 中出现的字段覆盖
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	type plain Profile
	*p = DefaultProfile()
	return node.Decode((*plain)(p))
}

// LoadLocomotionProfiles 加载角色配置文件
//
// 通过 embedded 包读取，嵌入资源中不存在时回退到磁盘。
//
// 参数:
//   - path: 配置文件路径（如 "data/locomotion.yaml"）
//
// 返回:
//   - *ProfileSet: 解析并验证后的配置集合
//   - error: 读取、解析或验证失败时返回错误
func LoadLocomotionProfiles(path string) (*ProfileSet, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locomotion config: %w", err)
	}
	set, err := ParseLocomotionProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ParseLocomotionProfiles 从 YAML 数据解析配置集合并验证每个配置档
func ParseLocomotionProfiles(data []byte) (*ProfileSet, error) {
	var set ProfileSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse locomotion config: %w", err)
	}
	if len(set.Profiles) == 0 {
		return nil, errors.New("locomotion config defines no profiles")
	}
	for name, p := range set.Profiles {
		if p == nil {
			return nil, fmt.Errorf("profile %q is empty", name)
		}
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile %q: %w", name, err)
		}
	}
	if set.Default == "" {
		set.Default = set.Names()[0]
	}
	if _, ok := set.Profiles[set.Default]; !ok {
		return nil, fmt.Errorf("default profile %q: %w", set.Default, ErrUnknownProfile)
	}
	return &set, nil
}

// Profile 按名称获取配置档，名称为空时返回默认配置档
func (s *ProfileSet) Profile(name string) (*Profile, error) {
	if name == "" {
		name = s.Default
	}
	p, ok := s.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%q (available: %v): %w", name, s.Names(), ErrUnknownProfile)
	}
	return p, nil
}

// Names 返回按字母排序的配置档名称
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate 验证配置档
func (p *Profile) Validate() error {
	if err := p.Locomotion.Validate(); err != nil {
		return err
	}
	if err := p.Surface.Validate(); err != nil {
		return err
	}
	if p.Camera.Distance <= 0 {
		return fmt.Errorf("camera distance must be positive, got %.2f", p.Camera.Distance)
	}
	if p.Camera.FovY <= 0 || p.Camera.FovY >= 180 {
		return fmt.Errorf("camera fovY must be in (0, 180), got %.1f", p.Camera.FovY)
	}
	return nil
}

// Validate 验证运动参数
//
// 检查项:
//   - 重力必须为负值，速度、频率、起跳冲量必须为正值
//   - 奔跑速度不小于行走速度，奔跑幅度大于行走幅度
//   - 插值系数与后退系数在 (0, 1] 范围内
func (c LocomotionConfig) Validate() error {
	if c.Gravity >= 0 {
		return fmt.Errorf("gravity must be negative, got %.4f", c.Gravity)
	}
	if c.WalkSpeed <= 0 || c.TurnSpeed <= 0 || c.JumpImpulse <= 0 {
		return fmt.Errorf("walkSpeed, turnSpeed and jumpImpulse must be positive")
	}
	if c.RunSpeed < c.WalkSpeed {
		return fmt.Errorf("runSpeed(%.3f) < walkSpeed(%.3f)", c.RunSpeed, c.WalkSpeed)
	}
	if c.WalkFrequency <= 0 || c.RunFrequency < c.WalkFrequency {
		return fmt.Errorf("frequencies invalid: walk=%.2f run=%.2f", c.WalkFrequency, c.RunFrequency)
	}
	if c.WalkAmplitude < 0 || c.RunAmplitude <= c.WalkAmplitude {
		return fmt.Errorf("amplitudes invalid: walk=%.2f run=%.2f", c.WalkAmplitude, c.RunAmplitude)
	}
	if c.BackwardFactor <= 0 || c.BackwardFactor > 1 {
		return fmt.Errorf("backwardFactor must be in (0, 1], got %.2f", c.BackwardFactor)
	}
	if c.SmoothingFactor <= 0 || c.SmoothingFactor > 1 {
		return fmt.Errorf("smoothingFactor must be in (0, 1], got %.2f", c.SmoothingFactor)
	}
	if c.BobAmplitude < 0 {
		return fmt.Errorf("bobAmplitude must not be negative, got %.3f", c.BobAmplitude)
	}
	if c.StallThreshold <= 0 {
		return fmt.Errorf("stallThreshold must be positive, got %.2f", c.StallThreshold)
	}
	switch c.StepMode {
	case StepModeScaled, StepModeFixed:
	default:
		return fmt.Errorf("unknown stepMode %q", c.StepMode)
	}
	return nil
}

// Validate 验证地面配置
func (c SurfaceConfig) Validate() error {
	switch c.Type {
	case SurfacePlane:
	case SurfaceMesh:
		if c.Mesh == "" {
			return errors.New("mesh surface requires a mesh path")
		}
	default:
		return fmt.Errorf("unknown surface type %q", c.Type)
	}
	if c.RayOffset < 0 || c.Epsilon < 0 {
		return fmt.Errorf("rayOffset and epsilon must not be negative")
	}
	return nil
}

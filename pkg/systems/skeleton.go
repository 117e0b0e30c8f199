package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// Skeleton 火柴人各关节的世界坐标
type Skeleton struct {
	Hip      mgl64.Vec3
	Shoulder mgl64.Vec3
	Neck     mgl64.Vec3
	Head     mgl64.Vec3
	// Pivots / Ends 每个肢体的枢轴和末端，按 locomotion.Limb 索引
	Pivots [locomotion.LimbCount]mgl64.Vec3
	Ends   [locomotion.LimbCount]mgl64.Vec3
}

// BuildSkeleton 按姿态摆放火柴人
//
// 身体先绕 Y 轴旋转到朝向 Yaw，再整体上移 Bob；
// 每个肢体从枢轴竖直向下，绕本地 X 轴旋转其关节角度；手臂取反方向。
// 面朝 +Z 时左侧为 +X。
func BuildSkeleton(fig *components.FigureComponent, pose locomotion.Pose) Skeleton {
	root := pose.Transform.Position.Add(mgl64.Vec3{0, pose.Bob, 0})
	yaw := mgl64.Rotate3DY(pose.Transform.Yaw)
	toWorld := func(local mgl64.Vec3) mgl64.Vec3 {
		return root.Add(yaw.Mul3x1(local))
	}

	var sk Skeleton
	sk.Hip = toWorld(mgl64.Vec3{0, fig.HipHeight, 0})
	sk.Shoulder = toWorld(mgl64.Vec3{0, fig.ShoulderHeight, 0})
	sk.Neck = toWorld(mgl64.Vec3{0, fig.NeckHeight, 0})
	sk.Head = toWorld(mgl64.Vec3{0, fig.NeckHeight + fig.HeadRadius, 0})

	// sign 为 -1 时肢体反向摆动，手臂与同侧腿因此前后相对
	limb := func(l locomotion.Limb, pivot mgl64.Vec3, length, sign float64) {
		swing := mgl64.Rotate3DX(sign * pose.Joints[l])
		end := pivot.Add(swing.Mul3x1(mgl64.Vec3{0, -length, 0}))
		sk.Pivots[l] = toWorld(pivot)
		sk.Ends[l] = toWorld(end)
	}
	limb(locomotion.LeftArm, mgl64.Vec3{fig.ShoulderHalfWidth, fig.ShoulderHeight, 0}, fig.ArmLength, -1)
	limb(locomotion.RightArm, mgl64.Vec3{-fig.ShoulderHalfWidth, fig.ShoulderHeight, 0}, fig.ArmLength, -1)
	limb(locomotion.LeftLeg, mgl64.Vec3{fig.HipHalfWidth, fig.HipHeight, 0}, fig.LegLength, 1)
	limb(locomotion.RightLeg, mgl64.Vec3{-fig.HipHalfWidth, fig.HipHeight, 0}, fig.LegLength, 1)
	return sk
}

// Segments 返回需要描边的所有线段
func (sk Skeleton) Segments() [][2]mgl64.Vec3 {
	segs := [][2]mgl64.Vec3{
		{sk.Hip, sk.Shoulder},
		{sk.Shoulder, sk.Neck},
		{sk.Pivots[locomotion.LeftArm], sk.Pivots[locomotion.RightArm]},
		{sk.Pivots[locomotion.LeftLeg], sk.Pivots[locomotion.RightLeg]},
	}
	for _, l := range locomotion.Limbs() {
		segs = append(segs, [2]mgl64.Vec3{sk.Pivots[l], sk.Ends[l]})
	}
	return segs
}

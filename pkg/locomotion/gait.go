package locomotion

import "math"

// GaitAngles 计算给定相位和幅度下的四肢角度
//
// 左侧肢体取 sin(phase)，右侧肢体取 sin(phase+π)，左右两侧反相。
// 手臂与同侧腿角度相同，绘制时手臂反向摆动。
func GaitAngles(phase, amplitude float64) JointAngles {
	left := math.Sin(phase) * amplitude
	right := math.Sin(phase+math.Pi) * amplitude
	var j JointAngles
	j[LeftArm] = left
	j[LeftLeg] = left
	j[RightArm] = right
	j[RightLeg] = right
	return j
}

// BobOffset 行走时的身体起伏 |sin(2·phase)|·amplitude
func BobOffset(phase, amplitude float64) float64 {
	return math.Abs(math.Sin(phase*2)) * amplitude
}

// Relax 将每个关节角度向 0 插值，插值系数为 k
func (j JointAngles) Relax(k float64) JointAngles {
	for i := range j {
		j[i] -= j[i] * k
	}
	return j
}

// MaxAbs 返回绝对值最大的关节角度
func (j JointAngles) MaxAbs() float64 {
	m := 0.0
	for _, a := range j {
		m = math.Max(m, math.Abs(a))
	}
	return m
}

package locomotion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadScript 输入脚本语法错误
var ErrBadScript = errors.New("invalid input script")

// ScriptStep 脚本中的一段：在 Frames 帧内保持 Input
type ScriptStep struct {
	Input  InputSnapshot
	Frames int
}

// InputScript 预先录制的输入序列，用于无窗口运行和测试
//
// 语法为逗号分隔的段，每段是 "+" 连接的动作加可选的 ":帧数"：
//
//	forward+run:30,jump:1,idle:60,left:10
//
// 动作: forward, back, left, right, run, jump, idle。省略帧数时为 1 帧。
type InputScript struct {
	Steps []ScriptStep
}

// ParseInputScript 解析输入脚本
func ParseInputScript(src string) (InputScript, error) {
	var script InputScript
	src = strings.TrimSpace(src)
	if src == "" {
		return script, nil
	}
	for _, part := range strings.Split(src, ",") {
		step, err := parseScriptStep(strings.TrimSpace(part))
		if err != nil {
			return InputScript{}, err
		}
		script.Steps = append(script.Steps, step)
	}
	return script, nil
}

func parseScriptStep(part string) (ScriptStep, error) {
	actions, count, hasCount := strings.Cut(part, ":")
	step := ScriptStep{Frames: 1}
	if hasCount {
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n <= 0 {
			return ScriptStep{}, fmt.Errorf("%w: bad frame count in %q", ErrBadScript, part)
		}
		step.Frames = n
	}
	for _, action := range strings.Split(actions, "+") {
		switch strings.ToLower(strings.TrimSpace(action)) {
		case "forward", "fwd":
			step.Input.Forward = true
		case "back", "backward":
			step.Input.Backward = true
		case "left":
			step.Input.TurnLeft = true
		case "right":
			step.Input.TurnRight = true
		case "run":
			step.Input.Run = true
		case "jump":
			step.Input.Jump = true
		case "idle":
		default:
			return ScriptStep{}, fmt.Errorf("%w: unknown action %q", ErrBadScript, action)
		}
	}
	return step, nil
}

// TotalFrames 返回脚本总帧数
func (s InputScript) TotalFrames() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Frames
	}
	return n
}

// At 返回第 frame 帧（从 0 开始）的输入，超出脚本范围时为空输入
func (s InputScript) At(frame int) InputSnapshot {
	if frame < 0 {
		return InputSnapshot{}
	}
	for _, step := range s.Steps {
		if frame < step.Frames {
			return step.Input
		}
		frame -= step.Frames
	}
	return InputSnapshot{}
}

package components

// HUDComponent 屏幕左上角的状态信息
type HUDComponent struct {
	// ProfileName 当前配置名
	ProfileName string
	// StepMode 步进模式
	StepMode string
	// Visible 按 H 切换
	Visible bool
	// Lines 本帧要显示的文本，由 HUDSystem 生成
	Lines []string
	// Warning 非空时以醒目颜色显示
	Warning string
}

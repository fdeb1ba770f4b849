package render

import "image/color"

// drawState 可被 Save/Restore 的绘制状态
type drawState struct {
	transform Affine
	alpha     float64
	composite CompositeMode
	fill      color.Color
}

func defaultDrawState() drawState {
	return drawState{
		transform: IdentityAffine(),
		alpha:     1,
		composite: CompositeSourceOver,
		fill:      color.Black,
	}
}

// stateStack 各后端共享的状态栈实现
type stateStack struct {
	current drawState
	saved   []drawState
}

func newStateStack(base Affine) stateStack {
	s := defaultDrawState()
	s.transform = base
	return stateStack{current: s}
}

func (s *stateStack) Save() {
	s.saved = append(s.saved, s.current)
}

// Restore 恢复最近一次 Save 的状态；栈为空时忽略
func (s *stateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *stateStack) Translate(x, y float64) {
	s.current.transform = s.current.transform.Translate(x, y)
}

func (s *stateStack) Rotate(theta float64) {
	s.current.transform = s.current.transform.Rotate(theta)
}

func (s *stateStack) Scale(sx, sy float64) {
	s.current.transform = s.current.transform.Scale(sx, sy)
}

func (s *stateStack) SetGlobalAlpha(alpha float64) {
	// NaN 被忽略，越界值截断到 [0, 1]
	if alpha != alpha {
		return
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.current.alpha = alpha
}

func (s *stateStack) SetCompositeMode(mode CompositeMode) {
	s.current.composite = mode
}

func (s *stateStack) SetFillColor(c color.Color) {
	if c == nil {
		return
	}
	s.current.fill = c
}

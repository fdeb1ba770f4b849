package app

import (
	"fmt"
	"strings"

	"github.com/pkg/profile"
)

// profileModes --profile 可选的模式
var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// ProfileModes 返回支持的模式名（用于帮助信息）
func ProfileModes() string {
	return "cpu|mem|block|mutex|goroutine|trace"
}

// StartProfile 按模式启动性能分析，返回的函数停止并写出结果
// mode 为空时不做任何事。dir 为空时写到当前目录。
func StartProfile(mode, dir string) (stop func(), err error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return func() {}, nil
	}
	option, ok := profileModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q (want %s)", mode, ProfileModes())
	}
	if dir == "" {
		dir = "."
	}
	p := profile.Start(option, profile.ProfilePath(dir), profile.NoShutdownHook)
	return p.Stop, nil
}

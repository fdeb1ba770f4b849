package systems

import "github.com/gonewx/fireworks/pkg/render"

// Liveness 单个池实体在一次 tick 之后的状态
type Liveness int

const (
	// Alive 继续保留在池中
	Alive Liveness = iota
	// Dead 由所属的池移除
	Dead
)

func (l Liveness) String() string {
	if l == Alive {
		return "alive"
	}
	return "dead"
}

// PoolSystem 一个实体池：每帧推进一次、绘制一次
//
// 池是其成员唯一的所有者和删除者。Update 结束时已经清理了死亡实体，
// 因此 Count 在两次 Update 之间是稳定的。
type PoolSystem interface {
	Update(dt float64)
	Draw(surface render.Surface)
	Count() int
}

package components

// ExplosionFactory 火箭到达顶点时调用，返回的子实体由火箭自身的拖尾收养
type ExplosionFactory func(rocket *ParticleComponent) ([]SpawnSpec, error)

// RocketComponent 带发射语义的拖尾
type RocketComponent struct {
	Explode   ExplosionFactory
	Detonated bool // 引爆只发生一次
}

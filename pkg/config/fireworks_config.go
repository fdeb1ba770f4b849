package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/gonewx/fireworks/internal/particle"
	"gopkg.in/yaml.v3"
)

// ApexMode 火箭顶点判定方式
type ApexMode string

const (
	// ApexInclusive 竖直速度 >= 0 即判定到达顶点
	ApexInclusive ApexMode = "inclusive"
	// ApexStrict 竖直速度 > 0 才判定到达顶点
	ApexStrict ApexMode = "strict"
)

// FireworksConfig 烟花配置的顶层结构
type FireworksConfig struct {
	Rockets RocketsConfig `yaml:"rockets"` // 火箭场景
	Show    ShowConfig    `yaml:"show"`    // 庆典场景（引信/爆点/火花/文字）
	Night   NightConfig   `yaml:"night"`   // 夜景场景（树枝/落叶/星星/烟花）
	Glyphs  GlyphConfig   `yaml:"glyphs"`  // 文字点阵
}

// RocketsConfig 火箭场景配置
type RocketsConfig struct {
	SpawnInterval     float64  `yaml:"spawnInterval"`     // 自动发射间隔（秒）
	Gravity           float64  `yaml:"gravity"`           // 重力加速度（像素/秒²），乘以质量
	ApexMode          ApexMode `yaml:"apexMode"`          // inclusive | strict
	Lifetime          float64  `yaml:"lifetime"`          // 火箭寿命（秒）
	Mass              float64  `yaml:"mass"`              // 火箭质量
	LaunchSpeedFactor float64  `yaml:"launchSpeedFactor"` // 发射速度 = 视口高度 × 系数
	LaunchSpread      float64  `yaml:"launchSpread"`      // 发射角扰动总宽度（弧度），实际为 ±一半

	Thrust    ThrustConfig    `yaml:"thrust"`
	Explosion ExplosionConfig `yaml:"explosion"`
}

// ThrustConfig 推进尾焰粒子
type ThrustConfig struct {
	VelocityFactor float64        `yaml:"velocityFactor"` // 相对父速度的系数（负值表示反向）
	Jitter         float64        `yaml:"jitter"`         // 水平扰动总宽度
	Hue            particle.Range `yaml:"hue"`
	Lightness      float64        `yaml:"lightness"`
	Radius         particle.Range `yaml:"radius"`
	Lifetime       particle.Range `yaml:"lifetime"`
	Mass           float64        `yaml:"mass"`
}

// ExplosionConfig 爆炸拖尾
type ExplosionConfig struct {
	Trails        int            `yaml:"trails"`        // 每次爆炸的拖尾数量
	Force         particle.Range `yaml:"force"`         // 拖尾初速度
	Lifetime      particle.Range `yaml:"lifetime"`      // 拖尾寿命
	Mass          float64        `yaml:"mass"`          // 拖尾质量
	HueSpread     float64        `yaml:"hueSpread"`     // 色相在基准色相上的随机偏移
	SparkForce    float64        `yaml:"sparkForce"`    // 拖尾子粒子初速度
	SparkLifetime float64        `yaml:"sparkLifetime"` // 拖尾子粒子寿命
	SparkMass     float64        `yaml:"sparkMass"`     // 拖尾子粒子质量
	SparkRadius   particle.Range `yaml:"sparkRadius"`
}

// ShowConfig 庆典场景配置（每次 Update 为一个 tick）
type ShowConfig struct {
	FireNumber int     `yaml:"fireNumber"` // 引信数量，也是爆点数量的基数 N
	Range      float64 `yaml:"range"`      // 随机范围基数

	SparkEvery        int     `yaml:"sparkEvery"`        // 每多少次爆炸发射一组特殊火花
	SurpriseEvery     int     `yaml:"surpriseEvery"`     // 每多少次爆炸进入惊喜模式
	SurpriseHoldCount int     `yaml:"surpriseHoldCount"` // 挂起多少个引信后开始文字
	TextDelay         float64 `yaml:"textDelay"`         // 文字序列延迟（秒）
	TextStep          float64 `yaml:"textStep"`          // 相邻字符间隔（秒）
	Text              string  `yaml:"text"`              // 文字内容

	Friction       float64 `yaml:"friction"`       // 爆点/火花/文字的速度衰减
	AlphaClamp     float64 `yaml:"alphaClamp"`     // life/base 高于此值时 alpha 固定为 1
	ChainThreshold float64 `yaml:"chainThreshold"` // 火花剩余寿命低于 base × 该值后开始连锁

	LightRadius       float64 `yaml:"lightRadius"`
	LightAlpha        float64 `yaml:"lightAlpha"`
	SpecialLightAlpha float64 `yaml:"specialLightAlpha"`

	BackdropAlpha float64 `yaml:"backdropAlpha"` // 每帧覆盖的半透明底色
	BackdropColor string  `yaml:"backdropColor"`
	FuseColor     string  `yaml:"fuseColor"`
	PlanetColor   string  `yaml:"planetColor"`
	RingColor     string  `yaml:"ringColor"`
}

// NightConfig 夜景场景配置（每次 Update 为一帧）
type NightConfig struct {
	LeafInterval     particle.Range `yaml:"leafInterval"`     // 落叶生成间隔（帧）
	FireworkInterval particle.Range `yaml:"fireworkInterval"` // 烟花生成间隔（帧）
	StarCount        int            `yaml:"starCount"`

	SkyHue           float64 `yaml:"skyHue"`
	SkySaturation    float64 `yaml:"skySaturation"`
	SkyLuminanceBase float64 `yaml:"skyLuminanceBase"`
	SkyLuminanceGain float64 `yaml:"skyLuminanceGain"`
	SkyAlpha         float64 `yaml:"skyAlpha"`

	Shell ShellConfig `yaml:"shell"`
	Twig  TwigConfig  `yaml:"twig"`
	Leaf  LeafConfig  `yaml:"leaf"`
	Star  StarConfig  `yaml:"star"`
}

// ShellConfig 三阶段烟花
type ShellConfig struct {
	ParticleCount    int            `yaml:"particleCount"`
	DeltaOpacity     float64        `yaml:"deltaOpacity"`
	Radius           float64        `yaml:"radius"`
	Velocity         float64        `yaml:"velocity"`
	WaitCount        particle.Range `yaml:"waitCount"`
	Threshold        float64        `yaml:"threshold"`
	DeltaTheta       float64        `yaml:"deltaTheta"`
	Gravity          float64        `yaml:"gravity"`
	Saturation       float64        `yaml:"saturation"`
	Lightness        float64        `yaml:"lightness"`
	ParticleRadius   float64        `yaml:"particleRadius"`
	ParticleVelocity float64        `yaml:"particleVelocity"`
	ParticleGravity  float64        `yaml:"particleGravity"`
	ParticleFriction float64        `yaml:"particleFriction"`
}

// TwigConfig 角落树枝
type TwigConfig struct {
	ShakeFrequency float64 `yaml:"shakeFrequency"`
	MaxLevel       int     `yaml:"maxLevel"`
	LineWidth      float64 `yaml:"lineWidth"`
	Color          string  `yaml:"color"`
}

// LeafConfig 落叶
type LeafConfig struct {
	Offset     float64        `yaml:"offset"`
	VelocityY  float64        `yaml:"velocityY"`
	Rate       particle.Range `yaml:"rate"`
	DeltaTheta float64        `yaml:"deltaTheta"` // 旋转速度在 ±该值之间
	Color      string         `yaml:"color"`
}

// StarConfig 星星
type StarConfig struct {
	Radius     particle.Range `yaml:"radius"`
	Count      particle.Range `yaml:"count"`
	DeltaTheta float64        `yaml:"deltaTheta"`
	DeltaPhi   float64        `yaml:"deltaPhi"`
}

// DefaultFireworksConfig 返回内置默认配置
func DefaultFireworksConfig() *FireworksConfig {
	return &FireworksConfig{
		Rockets: RocketsConfig{
			SpawnInterval:     0.5,
			Gravity:           9.81 * TicksPerSecond,
			ApexMode:          ApexInclusive,
			Lifetime:          10,
			Mass:              1,
			LaunchSpeedFactor: 0.75,
			LaunchSpread:      math.Pi / 8,
			Thrust: ThrustConfig{
				VelocityFactor: -0.1,
				Jitter:         8,
				Hue:            particle.Between(30, 45),
				Lightness:      75,
				Radius:         particle.Between(1, 2),
				Lifetime:       particle.Between(0.5, 1),
				Mass:           0.01,
			},
			Explosion: ExplosionConfig{
				Trails:        32,
				Force:         particle.Between(0, 128),
				Lifetime:      particle.Between(0.5, 1.5),
				Mass:          0.075,
				HueSpread:     15,
				SparkForce:    8,
				SparkLifetime: 1,
				SparkMass:     0.1,
				SparkRadius:   particle.Between(1, 2),
			},
		},
		Show: ShowConfig{
			FireNumber:        10,
			Range:             100,
			SparkEvery:        33,
			SurpriseEvery:     100,
			SurpriseHoldCount: 10,
			TextDelay:         3,
			TextStep:          0.01,
			Text:              "happylunarnewyear2017",
			Friction:          0.9,
			AlphaClamp:        0.6,
			ChainThreshold:    0.8,
			LightRadius:       200,
			LightAlpha:        0.25,
			SpecialLightAlpha: 0.02,
			BackdropAlpha:     0.2,
			BackdropColor:     "#000003",
			FuseColor:         "#ff3",
			PlanetColor:       "#aa0609",
			RingColor:         "#ff9",
		},
		Night: NightConfig{
			LeafInterval:     particle.Between(100, 200),
			FireworkInterval: particle.Between(20, 200),
			StarCount:        100,
			SkyHue:           210,
			SkySaturation:    60,
			SkyLuminanceBase: 5,
			SkyLuminanceGain: 15,
			SkyAlpha:         0.2,
			Shell: ShellConfig{
				ParticleCount:    300,
				DeltaOpacity:     0.01,
				Radius:           2,
				Velocity:         -3,
				WaitCount:        particle.Between(30, 60),
				Threshold:        50,
				DeltaTheta:       math.Pi / 10,
				Gravity:          0.002,
				Saturation:       80,
				Lightness:        60,
				ParticleRadius:   1.5,
				ParticleVelocity: 3,
				ParticleGravity:  0.02,
				ParticleFriction: 0.98,
			},
			Twig: TwigConfig{
				ShakeFrequency: math.Pi / 300,
				MaxLevel:       4,
				LineWidth:      3,
				Color:          "hsl(120, 60%, 1%)",
			},
			Leaf: LeafConfig{
				Offset:     100,
				VelocityY:  3,
				Rate:       particle.Between(0.4, 0.8),
				DeltaTheta: math.Pi / 300,
				Color:      "hsl(120, 60%, 1%)",
			},
			Star: StarConfig{
				Radius:     particle.Between(1, 4),
				Count:      particle.Between(100, 1000),
				DeltaTheta: math.Pi / 30,
				DeltaPhi:   math.Pi / 50000,
			},
		},
		Glyphs: DefaultGlyphConfig(),
	}
}

// LoadFireworksConfig 从 YAML 文件加载配置
// 文件中未出现的字段保留默认值
func LoadFireworksConfig(filePath string) (*FireworksConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fireworks config file: %w", err)
	}
	return ParseFireworksConfig(data)
}

// ParseFireworksConfig 解析 YAML 内容并校验
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	cfg := DefaultFireworksConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fireworks config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置的有效性
func (c *FireworksConfig) Validate() error {
	if err := c.Rockets.validate(); err != nil {
		return fmt.Errorf("rockets: %w", err)
	}
	if err := c.Show.validate(); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if err := c.Night.validate(); err != nil {
		return fmt.Errorf("night: %w", err)
	}
	if err := c.Glyphs.Validate(c.Show.Text); err != nil {
		return fmt.Errorf("glyphs: %w", err)
	}
	return nil
}

func (c *RocketsConfig) validate() error {
	if c.SpawnInterval <= 0 {
		return fmt.Errorf("spawnInterval must be > 0, got %v", c.SpawnInterval)
	}
	if c.ApexMode != ApexInclusive && c.ApexMode != ApexStrict {
		return fmt.Errorf("apexMode must be %q or %q, got %q", ApexInclusive, ApexStrict, c.ApexMode)
	}
	if c.Lifetime <= 0 {
		return fmt.Errorf("lifetime must be > 0, got %v", c.Lifetime)
	}
	if c.Mass < 0 {
		return fmt.Errorf("mass must be >= 0, got %v", c.Mass)
	}
	if c.LaunchSpeedFactor <= 0 {
		return fmt.Errorf("launchSpeedFactor must be > 0, got %v", c.LaunchSpeedFactor)
	}
	if c.Thrust.Lifetime.Min <= 0 {
		return fmt.Errorf("thrust.lifetime must be > 0, got %v", c.Thrust.Lifetime)
	}
	if c.Explosion.Trails < 0 {
		return fmt.Errorf("explosion.trails must be >= 0, got %d", c.Explosion.Trails)
	}
	if c.Explosion.Lifetime.Min <= 0 {
		return fmt.Errorf("explosion.lifetime must be > 0, got %v", c.Explosion.Lifetime)
	}
	if c.Explosion.SparkLifetime <= 0 {
		return fmt.Errorf("explosion.sparkLifetime must be > 0, got %v", c.Explosion.SparkLifetime)
	}
	return nil
}

func (c *ShowConfig) validate() error {
	if c.FireNumber < 1 {
		return fmt.Errorf("fireNumber must be >= 1, got %d", c.FireNumber)
	}
	if c.Range <= 0 {
		return fmt.Errorf("range must be > 0, got %v", c.Range)
	}
	if c.SparkEvery < 1 || c.SurpriseEvery < 1 {
		return fmt.Errorf("sparkEvery and surpriseEvery must be >= 1")
	}
	if c.SurpriseHoldCount < 1 || c.SurpriseHoldCount > c.FireNumber {
		return fmt.Errorf("surpriseHoldCount must be in [1, fireNumber], got %d", c.SurpriseHoldCount)
	}
	if c.TextDelay < 0 || c.TextStep < 0 {
		return fmt.Errorf("textDelay and textStep must be >= 0")
	}
	if c.Friction <= 0 || c.Friction > 1 {
		return fmt.Errorf("friction must be in (0, 1], got %v", c.Friction)
	}
	if c.AlphaClamp <= 0 || c.AlphaClamp > 1 {
		return fmt.Errorf("alphaClamp must be in (0, 1], got %v", c.AlphaClamp)
	}
	if c.ChainThreshold <= 0 || c.ChainThreshold >= 1 {
		return fmt.Errorf("chainThreshold must be in (0, 1), got %v", c.ChainThreshold)
	}
	for name, s := range map[string]string{
		"backdropColor": c.BackdropColor,
		"fuseColor":     c.FuseColor,
		"planetColor":   c.PlanetColor,
		"ringColor":     c.RingColor,
	} {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}
	return nil
}

func (c *NightConfig) validate() error {
	if c.LeafInterval.Min < 1 || c.FireworkInterval.Min < 1 {
		return fmt.Errorf("leafInterval and fireworkInterval must be >= 1 frame")
	}
	if c.StarCount < 0 {
		return fmt.Errorf("starCount must be >= 0, got %d", c.StarCount)
	}
	if c.Shell.ParticleCount < 0 {
		return fmt.Errorf("shell.particleCount must be >= 0, got %d", c.Shell.ParticleCount)
	}
	if c.Shell.DeltaOpacity <= 0 {
		return fmt.Errorf("shell.deltaOpacity must be > 0, got %v", c.Shell.DeltaOpacity)
	}
	if c.Shell.Velocity >= 0 {
		return fmt.Errorf("shell.velocity must be negative (upwards), got %v", c.Shell.Velocity)
	}
	if c.Shell.Threshold <= 0 {
		return fmt.Errorf("shell.threshold must be > 0, got %v", c.Shell.Threshold)
	}
	if c.Twig.MaxLevel < 0 || c.Twig.MaxLevel > 9 {
		return fmt.Errorf("twig.maxLevel must be in [0, 9], got %d", c.Twig.MaxLevel)
	}
	if c.Star.Count.Min < 1 {
		return fmt.Errorf("star.count must be >= 1, got %v", c.Star.Count)
	}
	return nil
}

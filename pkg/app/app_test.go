package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gonewx/fireworks/data"
	"github.com/gonewx/fireworks/pkg/embedded"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("rockets:\n  spawnInterval: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rockets:\n  spawnInterval: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		embedded fstest.MapFS
		interval float64
		wantErr  bool
	}{
		{"内置默认值", "", nil, 0.5, false},
		{"嵌入配置", "", fstest.MapFS{"fireworks.yaml": {Data: []byte("rockets:\n  spawnInterval: 1.5\n")}}, 1.5, false},
		{"外部文件优先", good, fstest.MapFS{"fireworks.yaml": {Data: []byte("rockets:\n  spawnInterval: 1.5\n")}}, 2, false},
		{"外部文件无效", bad, nil, 0, true},
		{"外部文件不存在", filepath.Join(dir, "missing.yaml"), nil, 0, true},
		{"嵌入配置无效", "", fstest.MapFS{"fireworks.yaml": {Data: []byte("show:\n  fireNumber: 0\n")}}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.embedded != nil {
				embedded.Init(tt.embedded)
			} else {
				embedded.Init(nil)
			}
			t.Cleanup(func() { embedded.Init(nil) })

			cfg, err := LoadConfig(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Rockets.SpawnInterval != tt.interval {
				t.Errorf("SpawnInterval = %v, want %v", cfg.Rockets.SpawnInterval, tt.interval)
			}
		})
	}
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	embedded.Init(data.Files)
	t.Cleanup(func() { embedded.Init(nil) })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("shipped %s is invalid: %v", EmbeddedConfigPath, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("shipped config fails validation: %v", err)
	}
}

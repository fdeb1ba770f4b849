package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func withFS(t *testing.T, files fstest.MapFS) {
	t.Helper()
	Init(files)
	t.Cleanup(func() { Init(nil) })
}

func TestNotInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Fatal("IsInitialized() should be false after Init(nil)")
	}
	if _, err := ReadFile("data/fireworks.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/fireworks.yaml") {
		t.Error("Exists() should be false before Init()")
	}
	if _, err := Glob("data/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob error = %v, want ErrNotInitialized", err)
	}
}

func TestReadFile(t *testing.T) {
	withFS(t, fstest.MapFS{
		"fireworks.yaml": {Data: []byte("rockets: {}\n")},
	})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"正常路径", "data/fireworks.yaml", "rockets: {}\n", false},
		{"带 ./ 前缀", "./data/fireworks.yaml", "rockets: {}\n", false},
		{"文件不存在", "data/missing.yaml", "", true},
		{"错误前缀", "assets/fireworks.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	withFS(t, fstest.MapFS{
		"fireworks.yaml": {Data: []byte("{}")},
		"night.yaml":     {Data: []byte("{}")},
	})

	if !Exists("data/night.yaml") {
		t.Error("Exists(data/night.yaml) = false")
	}
	if Exists("data/day.yaml") {
		t.Error("Exists(data/day.yaml) = true")
	}
	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Glob matched %v, want 2 files", matches)
	}
	for _, m := range matches {
		if !Exists(m) {
			t.Errorf("Glob returned %q, which Exists() does not find", m)
		}
	}
}

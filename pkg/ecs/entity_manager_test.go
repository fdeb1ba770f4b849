package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testMotion struct {
	X, Y   float64
	VX, VY float64
}

type testLifetime struct {
	Remaining float64
}

type testGlow interface {
	Glow() float64
}

type testHalo struct{ Strength float64 }

func (h *testHalo) Glow() float64 { return h.Strength }

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", id1, id2)
	}
	if em.Count() != 2 {
		t.Errorf("Count = %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testMotion{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testMotion{}))
	if !found {
		t.Fatal("Component should be found")
	}
	m := comp.(*testMotion)
	if m.X != 100 || m.Y != 200 {
		t.Errorf("got (%f, %f), want (100, 200)", m.X, m.Y)
	}

	// 泛型版本
	typed, ok := GetComponent[*testMotion](em, id)
	if !ok || typed != m {
		t.Error("generic GetComponent should return the same pointer")
	}
	if _, ok := GetComponent[*testLifetime](em, id); ok {
		t.Error("missing component should not be found")
	}
}

// TestDeferredDestroy 标记删除在 RemoveMarkedEntities 之前不生效
func TestDeferredDestroy(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testMotion{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记只算一次

	if !HasComponent[*testMotion](em, id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked")
	}

	if n := em.RemoveMarkedEntities(); n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
	if em.Exists(id) || HasComponent[*testMotion](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("mark should be cleared after cleanup")
	}
}

func TestDestroyUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.DestroyEntity(42)
	if n := em.RemoveMarkedEntities(); n != 0 {
		t.Errorf("removed = %d, want 0", n)
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testMotion{X: float64(i)})
		if i%3 == 0 {
			em.AddComponent(id, &testLifetime{Remaining: 1})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testMotion, *testLifetime](em)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d (creation order)", i, got[i], want[i])
		}
	}

	if n := len(GetEntitiesWith1[*testMotion](em)); n != 50 {
		t.Errorf("motion entities = %d, want 50", n)
	}
}

// TestInterfaceComponent 接口类型作为组件键
func TestInterfaceComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	var g testGlow = &testHalo{Strength: 0.5}
	em.components[id][typeOf[testGlow]()] = g

	got, ok := GetComponent[testGlow](em, id)
	if !ok || got.Glow() != 0.5 {
		t.Errorf("interface component = %v, %v", got, ok)
	}
}

func TestRemoveComponentAndClear(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testMotion{})
	em.AddComponent(id, &testLifetime{})

	RemoveComponent[*testLifetime](em, id)
	if HasComponent[*testLifetime](em, id) {
		t.Error("component should be removed")
	}
	if !HasComponent[*testMotion](em, id) {
		t.Error("other components should remain")
	}

	em.DestroyEntity(id)
	em.Clear()
	if em.Count() != 0 {
		t.Errorf("Count after Clear = %d", em.Count())
	}
	if n := em.RemoveMarkedEntities(); n != 0 {
		t.Errorf("Clear should drop pending destroys, removed %d", n)
	}
	// ID 不回退
	if next := em.CreateEntity(); next != id+1 {
		t.Errorf("next ID = %d, want %d", next, id+1)
	}
}

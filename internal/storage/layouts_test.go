package storage

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/rope"
)

func testLayout(t *testing.T, count int) rope.Layout {
	t.Helper()
	c, err := rope.CreateChain(core.V(0, 0), core.V(100, 0), count)
	if err != nil {
		t.Fatalf("CreateChain: %v", err)
	}
	ids := c.PointIDs()
	if err := c.Select(ids[1]); err != nil {
		t.Fatal(err)
	}
	if _, err := c.InsertAt(core.V(30, 40), ids[count-1]); err != nil {
		t.Fatal(err)
	}
	return c.Layout()
}

func TestLayoutSaveLoad(t *testing.T) {
	store := openTestStore(t)
	want := testLayout(t, 5)

	id, err := store.SaveLayout("arch", "bridge", want)
	if err != nil {
		t.Fatalf("SaveLayout() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveLayout() id = %d", id)
	}

	saved, err := store.LoadLayout("arch")
	if err != nil {
		t.Fatalf("LoadLayout() failed: %v", err)
	}
	if saved.Info.Name != "arch" || saved.Info.SceneID != "bridge" || saved.Info.ID != id {
		t.Errorf("info = %+v", saved.Info)
	}
	if saved.Info.Points != 6 || saved.Info.Constraints != 5 {
		t.Errorf("counts = %d/%d, expected 6/5", saved.Info.Points, saved.Info.Constraints)
	}

	got := saved.Layout
	if got.MinPoints != want.MinPoints || got.MaxPoints != want.MaxPoints {
		t.Errorf("bounds = %d..%d, expected %d..%d", got.MinPoints, got.MaxPoints, want.MinPoints, want.MaxPoints)
	}
	if len(got.Points) != len(want.Points) || len(got.Constraints) != len(want.Constraints) {
		t.Fatalf("shape = %d/%d, expected %d/%d",
			len(got.Points), len(got.Constraints), len(want.Points), len(want.Constraints))
	}
	for i := range want.Points {
		if got.Points[i] != want.Points[i] {
			t.Errorf("point %d = %+v, expected %+v", i, got.Points[i], want.Points[i])
		}
	}
	for i := range want.Constraints {
		if got.Constraints[i] != want.Constraints[i] {
			t.Errorf("constraint %d = %+v, expected %+v", i, got.Constraints[i], want.Constraints[i])
		}
	}

	// The loaded layout rebuilds a working chain
	c, err := rope.FromLayout(got, rope.DefaultParams())
	if err != nil {
		t.Fatalf("FromLayout() failed: %v", err)
	}
	if c.Len() != 6 || c.ConstraintCount() != 5 {
		t.Errorf("rebuilt chain %d/%d", c.Len(), c.ConstraintCount())
	}
}

func TestLayoutSaveReplaces(t *testing.T) {
	store := openTestStore(t)

	first, err := store.SaveLayout("swing", "pendulum", testLayout(t, 5))
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.SaveLayout("swing", "bridge", testLayout(t, 8))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("resave changed id from %d to %d", first, second)
	}

	saved, err := store.LoadLayout("swing")
	if err != nil {
		t.Fatal(err)
	}
	if saved.Info.SceneID != "bridge" || len(saved.Layout.Points) != 9 || len(saved.Layout.Constraints) != 8 {
		t.Errorf("resave not applied: %+v, %d points", saved.Info, len(saved.Layout.Points))
	}

	list, err := store.ListLayouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("ListLayouts() = %d entries, expected 1", len(list))
	}
}

func TestLayoutList(t *testing.T) {
	store := openTestStore(t)

	list, err := store.ListLayouts()
	if err != nil {
		t.Fatalf("ListLayouts() failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("empty store listed %d layouts", len(list))
	}

	for _, name := range []string{"a", "b", "c"} {
		if _, err := store.SaveLayout(name, "bridge", testLayout(t, 4)); err != nil {
			t.Fatal(err)
		}
	}

	list, err = store.ListLayouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("ListLayouts() = %d entries, expected 3", len(list))
	}
	// Same timestamp resolution, so newest id first
	if list[0].Name != "c" || list[2].Name != "a" {
		t.Errorf("order = %s, %s, %s", list[0].Name, list[1].Name, list[2].Name)
	}
	for _, info := range list {
		if info.Points != 5 || info.Constraints != 4 {
			t.Errorf("%s counts = %d/%d, expected 5/4", info.Name, info.Points, info.Constraints)
		}
	}
}

func TestLayoutDelete(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveLayout("gone", "bridge", testLayout(t, 5)); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveLayout("kept", "bridge", testLayout(t, 5)); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteLayout("gone"); err != nil {
		t.Fatalf("DeleteLayout() failed: %v", err)
	}
	if _, err := store.LoadLayout("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadLayout(deleted) err = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteLayout("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteLayout() err = %v, expected ErrNotFound", err)
	}

	saved, err := store.LoadLayout("kept")
	if err != nil {
		t.Fatalf("other layout lost: %v", err)
	}
	if len(saved.Layout.Points) != 6 {
		t.Errorf("other layout damaged: %d points", len(saved.Layout.Points))
	}
}

func TestLayoutEmptyName(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveLayout("", "bridge", testLayout(t, 5)); err == nil {
		t.Error("expected error for empty name")
	}
}

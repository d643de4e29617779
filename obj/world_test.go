package obj

import (
	"slices"
	"testing"
)

func TestWorldUpdateOrder(t *testing.T) {
	var log []string
	w := NewWorld(NewCamera(100, 100), nil)
	w.RegisterForUpdate(
		newRecorder("c2", 0, 2, &log),
		newRecorder("c0", 9, 0, &log),
		newRecorder("c1a", 0, 1, &log),
		newRecorder("c1b", 0, 1, &log),
	)
	w.SortRegistries()
	w.Update(&Context{})

	want := []string{"u:c0", "u:c1a", "u:c1b", "u:c2"}
	if !slices.Equal(log, want) {
		t.Fatalf("update order = %v, want %v", log, want)
	}
	if w.Frame() != 1 {
		t.Fatalf("frame = %d, want 1", w.Frame())
	}
}

func TestSortRegistriesKeepsInsertionOrderOnTies(t *testing.T) {
	var log []string
	w := NewWorld(NewCamera(100, 100), nil)
	a, b, c := newRecorder("a", 1, 0, &log), newRecorder("b", 0, 0, &log), newRecorder("c", 1, 0, &log)
	w.RegisterForDraw(a, b, c)

	high := NewStaticObject(0, 0, 1, 1, 0, 2)
	first := NewStaticObject(0, 0, 1, 1, 0, 1)
	second := NewStaticObject(0, 0, 1, 1, 0, 1)
	w.RegisterForCollision(high, first, second)
	w.SortRegistries()

	if got, want := w.DrawList(), []Entity{b, a, c}; !slices.Equal(got, want) {
		t.Fatalf("draw order = %v, want b, a, c", got)
	}
	if got, want := w.Colliders(), []Collider{first, second, high}; !slices.Equal(got, want) {
		t.Fatalf("collision order = %v, want first, second, high", got)
	}
}

func TestWorldCameraFollowsUpdatedPlayer(t *testing.T) {
	p, err := NewPlayer(nil, nil, "", 0, 0, DefaultPlayerConfig())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	cam := NewCamera(100, 100)
	cam.SetFollowSpeed(1, 1)
	w := NewWorld(cam, p)
	if cam.Target != &p.Track {
		t.Fatalf("camera should target the player's tracking point")
	}

	w.Update(&Context{})
	want := p.Track
	want.SubXY(50, 50)
	if cam.Position() != want {
		t.Fatalf("camera = %v, want %v from this tick's track point", cam.Position(), want)
	}
}

func TestWorldDrawSplitsAroundPlayer(t *testing.T) {
	var log []string
	p, err := NewPlayer(nil, nil, "", 0, 0, DefaultPlayerConfig())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	w := NewWorld(NewCamera(1024, 650), p)
	w.RegisterForDraw(
		newRecorder("front5", 5, 0, &log),
		newRecorder("back-1", -1, 0, &log),
		newRecorder("same0", 0, 0, &log),
		newRecorder("front3", 3, 0, &log),
	)
	w.SortRegistries()

	s := newFakeSurface(1024, 650)
	w.Draw(&Context{Surface: s})

	var got []string
	for _, c := range s.calls {
		switch c.kind {
		case "text":
			got = append(got, c.text)
		default:
			got = append(got, c.kind)
		}
	}
	want := []string{"clear", "back-1", "same0", "fill", "front3", "front5"}
	if !slices.Equal(got, want) {
		t.Fatalf("draw order = %v, want %v", got, want)
	}
}

func TestWorldCullsOffscreen(t *testing.T) {
	var log []string
	w := NewWorld(NewCamera(100, 100), nil)
	hidden := newRecorder("hidden", 0, 0, &log)
	hidden.hidden = true
	w.RegisterForDraw(hidden, newRecorder("shown", 0, 0, &log))

	s := newFakeSurface(100, 100)
	w.Draw(&Context{Surface: s})
	if got := s.texts(); !slices.Equal(got, []string{"shown"}) {
		t.Fatalf("drawn = %v, want only shown", got)
	}
}

func TestWorldIsolatesPanics(t *testing.T) {
	var log []string
	w := NewWorld(NewCamera(100, 100), nil)
	bad := newRecorder("bad", 0, 0, &log)
	bad.panicky = true
	w.RegisterForUpdate(newRecorder("a", 0, 0, &log), bad, newRecorder("b", 0, 1, &log))
	w.RegisterForDraw(newRecorder("a", 0, 0, &log), bad, newRecorder("b", 1, 0, &log))
	w.SortRegistries()

	ctx := &Context{Surface: newFakeSurface(100, 100)}
	w.Update(ctx)
	if !slices.Equal(log, []string{"u:a", "u:b"}) {
		t.Fatalf("updates = %v, want a and b despite the panic", log)
	}
	w.Draw(ctx)
	if got := ctx.Surface.(*fakeSurface).texts(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("drawn = %v, want a and b despite the panic", got)
	}
}

func TestWorldPrunesDestroyed(t *testing.T) {
	var log []string
	w := NewWorld(NewCamera(100, 100), nil)
	gone := newRecorder("gone", 0, 0, &log)
	kept := newRecorder("kept", 0, 0, &log)
	w.RegisterForUpdate(gone, kept)
	w.RegisterForDraw(gone, kept)

	gone.Destroy()
	w.Update(&Context{})
	if !slices.Equal(log, []string{"u:kept"}) {
		t.Fatalf("updates = %v, want only kept", log)
	}
	if len(w.UpdateList()) != 1 || len(w.DrawList()) != 1 {
		t.Fatalf("registries = %d, %d, want 1, 1", len(w.UpdateList()), len(w.DrawList()))
	}
}

func TestWorldDefaultsDt(t *testing.T) {
	w := NewWorld(nil, nil)
	ctx := &Context{}
	w.Update(ctx)
	if ctx.Dt != DefaultDt || ctx.World != w {
		t.Fatalf("ctx = %+v, want default dt and world attached", ctx)
	}
}

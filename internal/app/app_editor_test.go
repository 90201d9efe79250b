package app

import (
	"context"
	"testing"

	"jobdeck/internal/service"
	"jobdeck/internal/watch"
)

type deniedMedia struct{}

func (deniedMedia) AuthorizeMediaAccess(context.Context) (bool, error) { return false, nil }

func newTestApp(emitter service.EventEmitter) *App {
	a := New()
	a.emitter = emitter
	a.images = watch.NewImageWatcher(emitter)
	return a
}

func TestAddImageBlock_DeniedPermissionIsNoOp(t *testing.T) {
	emitter := &service.MockEmitter{}
	a := newTestApp(emitter)
	a.media = deniedMedia{}

	before := a.NewTemplateSession("classic")

	b, err := a.AddImageBlock()
	if err != nil {
		t.Fatalf("denied access is not an error: %v", err)
	}
	if b != nil {
		t.Fatalf("denied access must not append a block, got %+v", b)
	}
	if got := a.session.Blocks(); len(got) != len(before) {
		t.Errorf("block count changed on denial: %d -> %d", len(before), len(got))
	}

	events := emitter.Snapshot()
	if len(events) != 1 || events[0].Event != "media:denied" {
		t.Fatalf("want a single media:denied event, got %+v", events)
	}
}

func TestAppendImageBlock_DefaultGeometry(t *testing.T) {
	a := newTestApp(&service.MockEmitter{})

	a.NewTemplateSession("modern")
	b, err := a.appendImageBlock("/home/user/photo.png")
	if err != nil {
		t.Fatal(err)
	}
	if b.X != 16 || b.Y != 16 || b.W != 140 || b.H != 140 {
		t.Errorf("new image geometry = %+v", *b)
	}
	if b.URI != "/home/user/photo.png" {
		t.Errorf("uri = %s", b.URI)
	}
}

func TestAppendImageBlock_NoSession(t *testing.T) {
	a := newTestApp(&service.MockEmitter{})
	if _, err := a.appendImageBlock("/home/user/photo.png"); err == nil {
		t.Fatal("expected an error without an open session")
	}
}

package catalog

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
)

func records(ids ...string) []model.SyllabusRecord {
	out := make([]model.SyllabusRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.SyllabusRecord{CourseName: "C", SyllabusPDF: id})
	}
	return out
}

func TestCache_EmptyIsStale(t *testing.T) {
	c := &Cache{}
	if _, _, fresh := c.Snapshot(); fresh {
		t.Error("unloaded cache must be stale")
	}
}

func TestCache_OlderFetchDoesNotOverwriteNewer(t *testing.T) {
	c := &Cache{}

	slow := c.BeginFetch()
	fast := c.BeginFetch()

	if !c.Apply(fast, records("new")) {
		t.Fatal("newer fetch should apply")
	}
	if c.Apply(slow, records("old")) {
		t.Error("older fetch must be discarded")
	}

	got, version, fresh := c.Snapshot()
	if !fresh || version != fast || len(got) != 1 || got[0].SyllabusPDF != "new" {
		t.Errorf("unexpected snapshot %+v v=%d fresh=%v", got, version, fresh)
	}
}

func TestCache_MutationMakesStale(t *testing.T) {
	c := &Cache{}
	c.Apply(c.BeginFetch(), records("a"))

	inflight := c.BeginFetch()
	c.Invalidate()

	if _, _, fresh := c.Snapshot(); fresh {
		t.Error("cache must be stale after a mutation")
	}

	// a fetch started before the mutation still lands but leaves the cache stale
	c.Apply(inflight, records("a"))
	if _, _, fresh := c.Snapshot(); fresh {
		t.Error("fetch started before the mutation must not make the cache fresh")
	}

	c.Apply(c.BeginFetch(), records("b"))
	got, _, fresh := c.Snapshot()
	if !fresh || got[0].SyllabusPDF != "b" {
		t.Errorf("fetch after the mutation should make the cache fresh, got %+v fresh=%v", got, fresh)
	}
}

func TestCache_Remove(t *testing.T) {
	c := &Cache{}
	c.Apply(c.BeginFetch(), records("a", "b", "c"))
	c.Remove("b")

	got, _, _ := c.Snapshot()
	if len(got) != 2 || got[0].SyllabusPDF != "a" || got[1].SyllabusPDF != "c" {
		t.Errorf("unexpected records after remove %+v", got)
	}
}

func TestRegistry_SweepEvictsIdle(t *testing.T) {
	r := NewRegistry(time.Minute, zap.NewNop())
	now := time.Now()
	r.now = func() time.Time { return now }

	r.For("old")
	now = now.Add(2 * time.Minute)
	r.For("recent")

	if n := r.Sweep(); n != 1 {
		t.Errorf("expected 1 eviction, got %d", n)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 remaining cache, got %d", r.Len())
	}
}

func TestRegistry_ForReturnsSameCache(t *testing.T) {
	r := NewRegistry(time.Minute, zap.NewNop())
	if r.For("sid") != r.For("sid") {
		t.Error("expected the same cache for one session")
	}
	r.Drop("sid")
	if r.Len() != 0 {
		t.Error("Drop should remove the cache")
	}
}

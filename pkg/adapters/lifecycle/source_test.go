package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/adapters/lifecycle"
	"github.com/aretw0/memo/pkg/core"
)

func TestSource_ForwardsEvents(t *testing.T) {
	in := make(chan core.Event, 2)
	in <- core.Event{Type: core.EventDeleted, ID: "a1"}
	in <- core.Event{Type: core.EventReloaded}
	close(in)

	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(context.Background()))

	var got []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-src.Events():
			if !ok {
				assert.Equal(t, []string{"deleted(a1)", "reloaded(0)"}, got)
				return
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatal("source did not close")
		}
	}
}

func TestSource_StopsOnCancel(t *testing.T) {
	in := make(chan core.Event)
	ctx, cancel := context.WithCancel(context.Background())

	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not stop on cancel")
	}
}

func TestSource_FiltersTypes(t *testing.T) {
	in := make(chan core.Event, 3)
	in <- core.Event{Type: core.EventCreated, Memo: core.Note{ID: "a1"}}
	in <- core.Event{Type: core.EventUpdated, Memo: core.Note{ID: "a1"}}
	in <- core.Event{Type: core.EventDeleted, ID: "a1"}
	close(in)

	src := lifecycle.NewSource(in, core.EventCreated, core.EventDeleted)
	require.NoError(t, src.Start(context.Background()))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"created(a1)", "deleted(a1)"}, got)
}

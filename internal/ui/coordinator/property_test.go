package coordinator

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/testutil/fakehost"
)

// TestActiveTabInvariant_RandomInterleavings drives random create, switch
// and close sequences and checks after every step that the active tab is
// either empty or registered, and that the host shows exactly that surface.
func TestActiveTabInvariant_RandomInterleavings(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			h := newHarness(t)
			rng := rand.New(rand.NewSource(seed))
			surfaces := make(map[entity.TabID]*fakehost.Surface)

			for step := 0; step < 200; step++ {
				tabs := h.manager.Tabs(h.ctx)
				pick := func() entity.TabID {
					if len(tabs) == 0 || rng.Intn(10) == 0 {
						return entity.TabID(fmt.Sprintf("tab-unknown-%d", step))
					}
					return tabs[rng.Intn(len(tabs))].ID
				}

				switch op := rng.Intn(4); op {
				case 0:
					id, err := h.manager.CreateTab(h.ctx, "")
					require.NoError(t, err)
					all := h.host.Surfaces()
					surfaces[id] = all[len(all)-1]
				case 1, 2:
					id := pick()
					before := h.manager.ActiveTabID()
					_, err := h.manager.SwitchTab(h.ctx, id)
					if _, known := surfaces[id]; known {
						require.NoError(t, err)
					} else {
						require.True(t, errors.Is(err, ErrTabNotFound))
						require.Equal(t, before, h.manager.ActiveTabID())
					}
				case 3:
					id := pick()
					err := h.manager.CloseTab(h.ctx, id)
					if _, known := surfaces[id]; known {
						require.NoError(t, err)
						require.True(t, surfaces[id].IsDestroyed())
						delete(surfaces, id)
					} else {
						require.True(t, errors.Is(err, ErrTabNotFound))
					}
				}
				if rng.Intn(3) == 0 {
					h.settle()
				}

				assertActiveInvariant(t, h, surfaces)
			}
		})
	}
}

func assertActiveInvariant(t *testing.T, h *harness, surfaces map[entity.TabID]*fakehost.Surface) {
	t.Helper()

	active := h.manager.ActiveTabID()
	tabs := h.manager.Tabs(h.ctx)
	require.Len(t, tabs, len(surfaces), "registry entry for every live surface")

	activeCount := 0
	for _, tab := range tabs {
		s, ok := surfaces[tab.ID]
		require.True(t, ok)
		require.False(t, s.IsDestroyed())
		if tab.Active {
			activeCount++
		}
	}

	if active == "" {
		require.Zero(t, activeCount)
		require.Nil(t, h.host.Attached())
		return
	}
	require.Equal(t, 1, activeCount)
	require.Contains(t, surfaces, active)
	require.Same(t, surfaces[active], h.host.Attached())
}

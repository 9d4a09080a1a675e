// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDoPropagatesError(t *testing.T) {
	s := NewStore(station())
	sentinel := errors.New("boom")
	err := s.Do(func(st *State) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestStoreDoSerializesWriters(t *testing.T) {
	s := NewStore(station())
	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(st *State) error {
				id := uuid.New()
				st.Track = &Track{ID: id, Item: Item{Title: id.String()}}
				// Another writer must not be able to swap the slot between these lines.
				if st.Track.Item.Title != st.Track.ID.String() {
					t.Errorf("observed a mixed track")
				}
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, s.Do(func(st *State) error {
		require.NotNil(t, st.Track)
		assert.Equal(t, st.Track.ID.String(), st.Track.Item.Title)
		return nil
	}))
}

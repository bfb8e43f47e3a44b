package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type profile struct {
	ID int64
}

func TestStoreTokenRoundTrip(t *testing.T) {
	s := NewStore[*profile]()
	require.Empty(t, s.Token())

	s.SetToken("  abc123  ")
	require.Equal(t, "abc123", s.Token())
}

func TestStoreProfileRoundTrip(t *testing.T) {
	s := NewStore[*profile]()

	_, ok := s.Profile()
	require.False(t, ok)

	s.SetProfile(&profile{ID: 42})
	p, ok := s.Profile()
	require.True(t, ok)
	require.Equal(t, int64(42), p.ID)
}

func TestStoreClear(t *testing.T) {
	s := NewStore[*profile]()
	s.SetToken("abc123")
	s.SetProfile(&profile{ID: 42})

	s.Clear()
	require.Empty(t, s.Token())
	p, ok := s.Profile()
	require.False(t, ok)
	require.Nil(t, p)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore[*profile]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetToken("abc123")
			s.SetProfile(&profile{ID: 1})
		}()
		go func() {
			defer wg.Done()
			_ = s.Token()
			_, _ = s.Profile()
		}()
	}
	wg.Wait()

	require.Equal(t, "abc123", s.Token())
}

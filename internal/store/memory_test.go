package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

func TestCurrentBeforeSave(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSaveReplacesDataset(t *testing.T) {
	s := NewMemoryStore()
	day := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Save(rental.Dataset{Days: []rental.DayRecord{{Date: day, TotalRent: 10}}})
	s.Save(rental.Dataset{Days: []rental.DayRecord{{Date: day, TotalRent: 20}, {Date: day, TotalRent: 5}}})

	ds, err := s.Current()
	require.NoError(t, err)
	require.Len(t, ds.Days, 2)
	assert.Equal(t, int64(20), ds.Days[0].TotalRent)
}

func TestConcurrentSaveAndRead(t *testing.T) {
	s := NewMemoryStore()
	s.Save(rental.Dataset{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Save(rental.Dataset{Hours: make([]rental.HourRecord, n)})
		}(i)
		go func() {
			defer wg.Done()
			_, err := s.Current()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

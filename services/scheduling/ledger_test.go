package scheduling

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerReserveRelease(t *testing.T) {
	t.Run("Reserve Returns Stable Slot Key", func(t *testing.T) {
		ledger := NewSlotLedger()
		key, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		require.NoError(t, err)
		assert.Equal(t, "slot_doc-1_5_3_2025_1500", key)
	})

	t.Run("Second Reserve Of Same Slot Fails", func(t *testing.T) {
		ledger := NewSlotLedger()
		_, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		require.NoError(t, err)

		_, err = ledger.Reserve("doc-1", "5_3_2025", "15:00")
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("Same Time On Different Doctors Does Not Conflict", func(t *testing.T) {
		ledger := NewSlotLedger()
		_, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		require.NoError(t, err)
		_, err = ledger.Reserve("doc-2", "5_3_2025", "15:00")
		assert.NoError(t, err)
	})

	t.Run("Release Frees The Slot For Re-Reservation", func(t *testing.T) {
		ledger := NewSlotLedger()
		_, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		require.NoError(t, err)

		require.NoError(t, ledger.Release("doc-1", "5_3_2025", "15:00"))

		_, err = ledger.Reserve("doc-1", "5_3_2025", "15:00")
		assert.NoError(t, err)
	})

	t.Run("Release Of Unreserved Slot Is An Error", func(t *testing.T) {
		ledger := NewSlotLedger()
		err := ledger.Release("doc-1", "5_3_2025", "15:00")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestLedgerSeed(t *testing.T) {
	t.Run("Seed Loads Stored Occupancy", func(t *testing.T) {
		ledger := NewSlotLedger()
		ledger.Seed("doc-1", map[string][]string{"5_3_2025": {"15:00", "16:30"}})

		_, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		assert.ErrorIs(t, err, ErrSlotTaken)
		_, err = ledger.Reserve("doc-1", "5_3_2025", "17:00")
		assert.NoError(t, err)
	})

	t.Run("Seed Does Not Overwrite A Tracked Doctor", func(t *testing.T) {
		ledger := NewSlotLedger()
		_, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		require.NoError(t, err)

		// A later snapshot without the reservation must not erase it.
		ledger.Seed("doc-1", map[string][]string{})

		_, err = ledger.Reserve("doc-1", "5_3_2025", "15:00")
		assert.ErrorIs(t, err, ErrSlotTaken)
	})
}

func TestLedgerConcurrentReserve(t *testing.T) {
	t.Run("Exactly One Winner Per Slot", func(t *testing.T) {
		ledger := NewSlotLedger()

		const callers = 32
		var wg sync.WaitGroup
		errs := make([]error, callers)

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = ledger.Reserve("doc-1", "5_3_2025", "15:00")
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, ErrSlotTaken)
			}
		}
		assert.Equal(t, 1, winners, "exactly one concurrent reserve must win")
	})

	t.Run("Concurrent Reserve And Release Keep The Set Consistent", func(t *testing.T) {
		ledger := NewSlotLedger()

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := ledger.Reserve("doc-1", "5_3_2025", "15:00"); err == nil {
					require.NoError(t, ledger.Release("doc-1", "5_3_2025", "15:00"))
				}
			}()
		}
		wg.Wait()

		// After every winner released, the slot must be reservable again.
		_, err := ledger.Reserve("doc-1", "5_3_2025", "15:00")
		assert.NoError(t, err)
	})
}

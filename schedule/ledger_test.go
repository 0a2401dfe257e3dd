package schedule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func testCatalog() *schedule.Catalog {
	return schedule.NewCatalog(
		[]schedule.Rule{
			{Name: "Morning", Label: "09:00-13:00", Quota: 2},
			{Name: "Night", Label: "21:00-05:00", Quota: 1},
		},
		[]schedule.Rule{
			{Name: "Vacation", Quota: 1},
		},
	)
}

// =============================================================================
// CAPACITY RULE TESTS
// =============================================================================

func TestLedger_Create_CapacityScenario(t *testing.T) {
	// GIVEN: rule {name: "Morning", quota: 2}; ledger empty
	// WHEN:  Alice, Bob, and Carl book Morning on 2026-01-01
	// THEN:  Alice and Bob succeed; Carl fails with the full capacity context

	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	_, err := ledger.Create("2026-01-01", "Morning", "Alice", catalog)
	assert.NoError(t, err, "first booking should succeed")

	_, err = ledger.Create("2026-01-01", "Morning", "Bob", catalog)
	assert.NoError(t, err, "second booking should succeed")

	_, err = ledger.Create("2026-01-01", "Morning", "Carl", catalog)
	require.Error(t, err, "third booking should exceed quota")

	var capErr *schedule.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "Morning", capErr.SlotType)
	assert.Equal(t, 2, capErr.Quota)
	assert.Equal(t, "2026-01-01", capErr.Date)
	assert.True(t, schedule.IsClientError(err))

	assert.Equal(t, 2, ledger.Len(), "failed create must not append")
}

func TestLedger_Create_QuotaFillsPerDate(t *testing.T) {
	// The quota is per (date, slotType): filling one date does not block
	// another.
	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	for i := 0; i < 2; i++ {
		_, err := ledger.Create("2026-01-01", "Morning", fmt.Sprintf("emp-%d", i), catalog)
		require.NoError(t, err)
	}

	_, err := ledger.Create("2026-01-02", "Morning", "Alice", catalog)
	assert.NoError(t, err, "a different date has its own capacity")
}

func TestLedger_Create_QuotaOneRejectsDuplicate(t *testing.T) {
	// GIVEN: "Night" has quota 1
	// WHEN:  A second assignment for the same (date, slotType) is created
	// THEN:  It fails; quota 1 is the exact-duplicate rule

	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	_, err := ledger.Create("2026-03-10", "Night", "Alice", catalog)
	require.NoError(t, err)

	_, err = ledger.Create("2026-03-10", "Night", "Bob", catalog)
	assert.ErrorIs(t, err, schedule.ErrCapacityExceeded)
}

func TestLedger_Create_OpenBookingWithoutRule(t *testing.T) {
	// GIVEN: a slot type no rule matches
	// WHEN:  many assignments share its (date, slotType)
	// THEN:  all succeed; the catalog is advisory unless a rule exists

	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	for i := 0; i < 5; i++ {
		_, err := ledger.Create("2026-01-01", "14:00-18:00", fmt.Sprintf("emp-%d", i), catalog)
		assert.NoError(t, err)
	}
	assert.Equal(t, 5, ledger.Len())
}

func TestLedger_Create_QuotaZeroBlocksAllBookings(t *testing.T) {
	ledger := schedule.NewLedger(nil)
	catalog := schedule.NewCatalog([]schedule.Rule{{Name: "Frozen", Quota: 0}}, nil)

	_, err := ledger.Create("2026-01-01", "Frozen", "Alice", catalog)
	assert.ErrorIs(t, err, schedule.ErrCapacityExceeded)
}

// =============================================================================
// IDENTITY AND DELETION TESTS
// =============================================================================

func TestLedger_Create_MintsStableIDs(t *testing.T) {
	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	a, err := ledger.Create("2026-01-01", "Morning", "Alice", catalog)
	require.NoError(t, err)
	b, err := ledger.Create("2026-01-01", "Morning", "Bob", catalog)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	found, ok := ledger.Find(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", found.Employee)
}

func TestLedger_NewLedger_BackfillsMissingIDs(t *testing.T) {
	// Records persisted before IDs existed load with IDs minted, so every
	// assignment is addressable for deletion.
	ledger := schedule.NewLedger([]schedule.Assignment{
		{Date: "2026-01-01", SlotType: "Morning", Employee: "Alice"},
		{ID: "keep-me", Date: "2026-01-02", SlotType: "Night", Employee: "Bob"},
	})

	all := ledger.All()
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].ID)
	assert.Equal(t, "keep-me", all[1].ID)
}

func TestLedger_Delete_ByID(t *testing.T) {
	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	a, _ := ledger.Create("2026-01-01", "Morning", "Alice", catalog)
	b, _ := ledger.Create("2026-01-02", "Night", "Bob", catalog)

	removed, err := ledger.Delete(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", removed.Employee)
	assert.Equal(t, 1, ledger.Len())

	// The surviving assignment is untouched.
	found, ok := ledger.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, "Bob", found.Employee)
}

func TestLedger_Delete_SameIDTwiceFailsLoudly(t *testing.T) {
	// GIVEN: an assignment was already deleted
	// WHEN:  the same ID is deleted again (a stale reference)
	// THEN:  the call fails with ErrAssignmentNotFound and nothing else
	//        is removed

	ledger := schedule.NewLedger(nil)
	catalog := testCatalog()

	a, _ := ledger.Create("2026-01-01", "Morning", "Alice", catalog)
	ledger.Create("2026-01-01", "Morning", "Bob", catalog)

	_, err := ledger.Delete(a.ID)
	require.NoError(t, err)

	_, err = ledger.Delete(a.ID)
	assert.ErrorIs(t, err, schedule.ErrAssignmentNotFound)
	assert.True(t, schedule.IsNotFound(err))
	assert.Equal(t, 1, ledger.Len(), "stale delete must not remove an unrelated record")
}

func TestLedger_Delete_UnknownID(t *testing.T) {
	ledger := schedule.NewLedger(nil)

	_, err := ledger.Delete("no-such-id")
	require.Error(t, err)

	var nfErr *schedule.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "no-such-id", nfErr.ID)
}

// =============================================================================
// CATALOG CHANGE SEMANTICS
// =============================================================================

func TestLedger_Create_ValidatesAgainstCurrentCatalogOnly(t *testing.T) {
	// Assignments made under an old catalog stay valid: only new creates
	// see the tightened quota.
	ledger := schedule.NewLedger(nil)

	open := schedule.NewCatalog(nil, nil)
	for i := 0; i < 3; i++ {
		_, err := ledger.Create("2026-01-01", "Morning", fmt.Sprintf("emp-%d", i), open)
		require.NoError(t, err)
	}

	tightened := schedule.NewCatalog([]schedule.Rule{{Name: "Morning", Quota: 2}}, nil)
	_, err := ledger.Create("2026-01-01", "Morning", "late", tightened)
	assert.ErrorIs(t, err, schedule.ErrCapacityExceeded, "count already exceeds the new quota")
	assert.Equal(t, 3, ledger.Len(), "existing assignments are not invalidated")
}

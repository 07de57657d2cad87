package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
	"github.com/Zxen1/Events-Platform-sub005/internal/ledger"
	"github.com/Zxen1/Events-Platform-sub005/internal/ledger/testhelpers"
)

type StoreTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	store  *ledger.Store
}

func TestStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.store = ledger.NewStore(suite.testDB.DB)
}

func (suite *StoreTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *StoreTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func newDraft(t *testing.T, gateway domain.Gateway, paymentID string, amount string) *domain.TransactionDraft {
	amt, err := decimal.NewFromString(amount)
	require.NoError(t, err)

	draft, err := domain.NewTransactionDraft(gateway, paymentID, amt)
	require.NoError(t, err)
	return draft
}

func (suite *StoreTestSuite) Test_Commit_AssignsIdentityAndTimestamps() {
	ctx := context.Background()
	t := suite.T()

	memberID := int64(42)
	checkoutKey := "ck_9f2b"

	draft := newDraft(t, domain.GatewayStripe, "pi_commit_1", "19.99")
	draft.MemberID = &memberID
	draft.CheckoutKey = &checkoutKey
	draft.PaymentMethod = "visa •••• 4242"
	draft.LineItems = []byte(`[{"item":"featured_listing","qty":1}]`)
	draft.SetCurrency("aud")

	record, err := suite.store.Commit(ctx, draft)
	require.NoError(t, err)

	assert.Positive(t, record.ID)
	assert.Equal(t, domain.StatusPaid, record.Status)
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.UpdatedAt.IsZero())

	// Read back and verify the round trip preserved everything.
	found, err := suite.store.FindByID(ctx, record.ID)
	require.NoError(t, err)

	assert.Equal(t, "pi_commit_1", found.PaymentID)
	assert.Equal(t, domain.GatewayStripe, found.Gateway)
	assert.Equal(t, "AUD", found.Currency)
	assert.Equal(t, "visa •••• 4242", found.PaymentMethod)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("19.99")),
		"expected 19.99, got %s", found.Amount)
	require.NotNil(t, found.MemberID)
	assert.Equal(t, int64(42), *found.MemberID)
	require.NotNil(t, found.CheckoutKey)
	assert.Equal(t, "ck_9f2b", *found.CheckoutKey)
	assert.JSONEq(t, `[{"item":"featured_listing","qty":1}]`, string(found.LineItems))
}

func (suite *StoreTestSuite) Test_Commit_StoresTwoFractionDigits() {
	ctx := context.Background()
	t := suite.T()

	draft := newDraft(t, domain.GatewayPayPal, "ord_round_1", "10.005")

	record, err := suite.store.Commit(ctx, draft)
	require.NoError(t, err)

	found, err := suite.store.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.01", found.Amount.StringFixed(2))
}

func (suite *StoreTestSuite) Test_Commit_DuplicatePaymentID() {
	ctx := context.Background()
	t := suite.T()

	first := newDraft(t, domain.GatewayStripe, "pi_dup_1", "25.00")
	_, err := suite.store.Commit(ctx, first)
	require.NoError(t, err)

	second := newDraft(t, domain.GatewayStripe, "pi_dup_1", "25.00")
	_, err = suite.store.Commit(ctx, second)
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeDuplicatePayment))

	var count int
	err = suite.testDB.DB.Pool.QueryRow(ctx, "SELECT count(*) FROM transactions").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func (suite *StoreTestSuite) Test_Commit_SamePaymentIDDifferentGateways() {
	ctx := context.Background()
	t := suite.T()

	// Uniqueness is scoped per gateway; identifiers from different providers
	// never collide.
	_, err := suite.store.Commit(ctx, newDraft(t, domain.GatewayStripe, "shared_id", "5.00"))
	require.NoError(t, err)

	_, err = suite.store.Commit(ctx, newDraft(t, domain.GatewayPayPal, "shared_id", "5.00"))
	require.NoError(t, err)
}

func (suite *StoreTestSuite) Test_Commit_ConcurrentDuplicates() {
	ctx := context.Background()
	t := suite.T()

	const workers = 8

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		committed  int
		duplicates int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			draft := newDraft(t, domain.GatewayPayPal, "ord_race_1", "30.00")
			_, err := suite.store.Commit(ctx, draft)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				committed++
			case domain.IsErrorCode(err, domain.ErrCodeDuplicatePayment):
				duplicates++
			default:
				t.Errorf("unexpected commit error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, committed, "exactly one concurrent commit may win")
	assert.Equal(t, workers-1, duplicates)

	var count int
	err := suite.testDB.DB.Pool.QueryRow(ctx, "SELECT count(*) FROM transactions").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func (suite *StoreTestSuite) Test_FindByID_NotFound() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.store.FindByID(ctx, 99999)
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeTransactionNotFound))
}

func (suite *StoreTestSuite) Test_FindByGatewayPaymentID() {
	ctx := context.Background()
	t := suite.T()

	record, err := suite.store.Commit(ctx, newDraft(t, domain.GatewayStripe, "pi_lookup_1", "12.34"))
	require.NoError(t, err)

	found, err := suite.store.FindByGatewayPaymentID(ctx, domain.GatewayStripe, "pi_lookup_1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)

	_, err = suite.store.FindByGatewayPaymentID(ctx, domain.GatewayPayPal, "pi_lookup_1")
	assert.Error(t, err)
}

func (suite *StoreTestSuite) Test_FindByMemberID_Paging() {
	ctx := context.Background()
	t := suite.T()

	memberID := int64(7)
	otherMember := int64(8)

	for i := 0; i < 5; i++ {
		draft := newDraft(t, domain.GatewayStripe, fmt.Sprintf("pi_page_%d", i), "10.00")
		draft.MemberID = &memberID
		_, err := suite.store.Commit(ctx, draft)
		require.NoError(t, err)
	}

	other := newDraft(t, domain.GatewayStripe, "pi_other_member", "10.00")
	other.MemberID = &otherMember
	_, err := suite.store.Commit(ctx, other)
	require.NoError(t, err)

	page, err := suite.store.FindByMemberID(ctx, memberID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// Newest first.
	assert.Greater(t, page[0].ID, page[1].ID)

	next, err := suite.store.FindByMemberID(ctx, memberID, 2, 2)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Greater(t, page[1].ID, next[0].ID)

	rest, err := suite.store.FindByMemberID(ctx, memberID, 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func (suite *StoreTestSuite) Test_TotalsSince() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.store.Commit(ctx, newDraft(t, domain.GatewayStripe, "pi_tot_1", "10.00"))
	require.NoError(t, err)
	_, err = suite.store.Commit(ctx, newDraft(t, domain.GatewayStripe, "pi_tot_2", "5.50"))
	require.NoError(t, err)
	_, err = suite.store.Commit(ctx, newDraft(t, domain.GatewayPayPal, "ord_tot_1", "20.00"))
	require.NoError(t, err)

	totals, err := suite.store.TotalsSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, domain.GatewayPayPal, totals[0].Gateway)
	assert.Equal(t, int64(1), totals[0].Count)
	assert.Equal(t, "20.00", totals[0].Total.StringFixed(2))

	assert.Equal(t, domain.GatewayStripe, totals[1].Gateway)
	assert.Equal(t, int64(2), totals[1].Count)
	assert.Equal(t, "15.50", totals[1].Total.StringFixed(2))
}

func (suite *StoreTestSuite) Test_TotalsSince_EmptyWindow() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.store.Commit(ctx, newDraft(t, domain.GatewayStripe, "pi_old_1", "10.00"))
	require.NoError(t, err)

	totals, err := suite.store.TotalsSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, totals)
}

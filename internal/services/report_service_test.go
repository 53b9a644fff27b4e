package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paytrack/ledger-gateway/internal/model"
)

func seedBalances(t *testing.T, env *testEnv, adminID int64, balances []int64) []*model.Customer {
	t.Helper()
	ctx := context.Background()
	sess := model.Session{AdminID: adminID}

	customers := make([]*model.Customer, 0, len(balances))
	for i, b := range balances {
		_, c, err := env.ledger.AddCustomer(ctx, fmt.Sprintf("customer %c%c", 'a'+i/26, 'a'+i%26), "415-555-1234", adminID, sess)
		require.NoError(t, err)
		customers = append(customers, c)
		if b == 0 {
			continue
		}
		kind := model.KindSale
		amount := -b
		if b > 0 {
			kind = model.KindPayment
			amount = b
		}
		_, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(amount), kind, "", c.ID, adminID, sess)
		require.NoError(t, err)
	}
	return customers
}

func TestReportService_BalancePage_Due(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// 7 debtors, 2 in credit, 3 settled; page size is 5.
	seedBalances(t, env, 1, []int64{-300, -50, -50, -10, -200, -50, -5, 40, 90, 0, 0, 0})

	page1, err := env.reports.BalancePage(ctx, model.ReportDue, 1, "")
	require.NoError(t, err)
	require.Len(t, page1.Items, 5)
	assert.True(t, page1.HasMore)
	assert.True(t, page1.Items[0].Balance.Equal(decimal.NewFromInt(-300)), "most indebted first")

	page2, err := env.reports.BalancePage(ctx, model.ReportDue, 1, page1.NextCursor)
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.False(t, page2.HasMore)
	assert.Empty(t, page2.NextCursor)

	seen := map[int64]bool{}
	prev := decimal.NewFromInt(-1000)
	for _, c := range append(page1.Items, page2.Items...) {
		assert.False(t, seen[c.ID], "customer %d appears twice", c.ID)
		seen[c.ID] = true
		assert.True(t, c.Balance.IsNegative(), "due report only lists debtors")
		assert.True(t, c.Balance.GreaterThanOrEqual(prev), "ascending balance order")
		prev = c.Balance
	}
	assert.Len(t, seen, 7, "every debtor is listed exactly once")
}

func TestReportService_BalancePage_Overpaid(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	seedBalances(t, env, 1, []int64{-300, 40, 90, 0, 15})

	page, err := env.reports.BalancePage(ctx, model.ReportOverpaid, 1, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.False(t, page.HasMore)
	assert.True(t, page.Items[0].Balance.Equal(decimal.NewFromInt(90)), "largest credit first")
	assert.True(t, page.Items[2].Balance.Equal(decimal.NewFromInt(15)))
}

func TestReportService_BalancePage_StableAcrossInserts(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sess := model.Session{AdminID: 1}

	seedBalances(t, env, 1, []int64{-100, -90, -80, -70, -60, -50, -40})

	page1, err := env.reports.BalancePage(ctx, model.ReportDue, 1, "")
	require.NoError(t, err)
	require.True(t, page1.HasMore)

	// A debtor appearing behind the cursor must not duplicate rows on
	// the next page.
	_, c, err := env.ledger.AddCustomer(ctx, "late addition", "415-555-1234", 1, sess)
	require.NoError(t, err)
	_, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(95), model.KindSale, "", c.ID, 1, sess)
	require.NoError(t, err)

	page2, err := env.reports.BalancePage(ctx, model.ReportDue, 1, page1.NextCursor)
	require.NoError(t, err)

	seen := map[int64]bool{}
	for _, item := range page1.Items {
		seen[item.ID] = true
	}
	for _, item := range page2.Items {
		assert.False(t, seen[item.ID], "row %d served twice", item.ID)
	}
}

func TestReportService_BalancePage_BadInput(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.reports.BalancePage(ctx, model.ReportMode("richest"), 1, "")
	assert.ErrorIs(t, err, ErrInvalidCursor)

	_, err = env.reports.BalancePage(ctx, model.ReportDue, 1, "!!not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestReportService_TransactionHistoryPage(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	for i := 1; i <= 7; i++ {
		sess, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(int64(i)), model.KindSale, "", c.ID, 1, sess)
		require.NoError(t, err)
	}

	page1, err := env.reports.TransactionHistoryPage(ctx, c.ID, 1, "")
	require.NoError(t, err)
	require.Len(t, page1.Items, 5)
	assert.True(t, page1.HasMore)
	assert.True(t, page1.Items[0].Amount.Equal(decimal.NewFromInt(7)), "newest first")

	page2, err := env.reports.TransactionHistoryPage(ctx, c.ID, 1, page1.NextCursor)
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.False(t, page2.HasMore)
	assert.True(t, page2.Items[1].Amount.Equal(decimal.NewFromInt(1)))
}

func TestReportService_ActionLogPage(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sess := model.Session{AdminID: 1}

	for i := 0; i < 6; i++ {
		_, _, err := env.ledger.AddCustomer(ctx, fmt.Sprintf("customer a%c", 'a'+i), "415-555-1234", 1, sess)
		require.NoError(t, err)
	}

	page1, err := env.reports.ActionLogPage(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, page1.Items, 5)
	assert.True(t, page1.HasMore)
	assert.Equal(t, model.ActionAddCustomer, page1.Items[0].ActionType)

	page2, err := env.reports.ActionLogPage(ctx, 1, page1.NextCursor)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.False(t, page2.HasMore)

	other, err := env.reports.ActionLogPage(ctx, 2, "")
	require.NoError(t, err)
	assert.Empty(t, other.Items, "logs are admin scoped")
}

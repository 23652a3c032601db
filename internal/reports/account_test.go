package reports

import (
	"math"
	"testing"

	"finreports/internal/core"
)

func TestAccountSummary(t *testing.T) {
	b := New([]core.Transaction{
		{Amount: 2000, Account: "Checking"},
		{Amount: -500, Account: "Checking"},
		{Amount: -300, Account: "Credit Card"},
		{Amount: -100, Account: "Credit Card"},
	})
	r := b.AccountSummary(nil)

	if len(r.Accounts) != 2 {
		t.Fatalf("accounts: %+v", r.Accounts)
	}
	checking := r.Accounts[0]
	if checking.Account != "Checking" {
		t.Fatalf("abs balance-change order: %+v", r.Accounts)
	}
	if checking.Income != 2000 || checking.Expenses != 500 || checking.BalanceChange != 1500 {
		t.Errorf("checking line: %+v", checking)
	}
	cc := r.Accounts[1]
	if cc.Income != 0 || cc.Expenses != 400 || cc.BalanceChange != -400 || cc.TransactionCount != 2 {
		t.Errorf("credit card line: %+v", cc)
	}
	if r.TotalBalanceChange != 1100 {
		t.Errorf("total balance change: %v", r.TotalBalanceChange)
	}
}

func TestAccountSummaryTieBreaksOnName(t *testing.T) {
	b := New([]core.Transaction{
		{Amount: -100, Account: "Beta"},
		{Amount: 100, Account: "Alpha"},
	})
	r := b.AccountSummary(nil)
	if r.Accounts[0].Account != "Alpha" {
		t.Fatalf("equal absolute changes should order by name: %+v", r.Accounts)
	}
	if r.TotalBalanceChange != 0 {
		t.Errorf("total balance change: %v", r.TotalBalanceChange)
	}
}

func TestAccountSummarySkipsUnusableAmounts(t *testing.T) {
	b := New([]core.Transaction{
		{Amount: 100, Account: "Checking"},
		{Amount: math.NaN(), Account: "Checking"},
	})
	r := b.AccountSummary(nil)
	a := r.Accounts[0]
	if a.Income != 100 || a.Expenses != 0 {
		t.Fatalf("NaN amount leaked into flows: %+v", a)
	}
	if a.TransactionCount != 2 {
		t.Errorf("count covers every record in the account: %d", a.TransactionCount)
	}
}

func TestAccountSummaryEmptySet(t *testing.T) {
	r := New(nil).AccountSummary(nil)
	if r.Accounts == nil || len(r.Accounts) != 0 {
		t.Fatalf("empty result should be an empty slice: %+v", r.Accounts)
	}
	doc := r.Document()
	if _, ok := doc["accounts"]; !ok {
		t.Error("document missing accounts key")
	}
}

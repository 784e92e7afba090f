package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newUser(username, walletID string) NewUser {
	return NewUser{
		Username: username,
		Password: "hashed",
		Email:    username + "@school.edu",
		FullName: "User " + username,
		WalletID: walletID,
	}
}

func TestCreateUserCreatesWallet(t *testing.T) {
	store := NewMemoryStore()
	user, err := store.CreateUser(context.Background(), newUser("jessica", "wallet-j"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Error("user id not assigned")
	}
	wallet, err := store.GetWalletByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("wallet missing after user creation: %v", err)
	}
	if !wallet.Balance.Equal(decimal.Zero) {
		t.Errorf("new wallet balance: want 0 got %s", wallet.Balance)
	}
}

func TestCreateUserConflicts(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.CreateUser(context.Background(), newUser("jessica", "wallet-j")); err != nil {
		t.Fatalf("create: %v", err)
	}
	cases := map[string]NewUser{
		"username": {Username: "jessica", Email: "other@school.edu", WalletID: "wallet-x"},
		"email":    {Username: "other", Email: "jessica@school.edu", WalletID: "wallet-y"},
		"walletId": {Username: "another", Email: "another@school.edu", WalletID: "wallet-j"},
	}
	for name, nu := range cases {
		if _, err := store.CreateUser(context.Background(), nu); !errors.Is(err, ErrConflict) {
			t.Errorf("%s conflict: want ErrConflict, got %v", name, err)
		}
	}
}

func TestLookupsByUsernameAndWalletID(t *testing.T) {
	store := NewMemoryStore()
	created, _ := store.CreateUser(context.Background(), newUser("jessica", "wallet-j"))

	byName, err := store.GetUserByUsername(context.Background(), "jessica")
	if err != nil || byName.ID != created.ID {
		t.Errorf("by username: got %v, %v", byName, err)
	}
	byWallet, err := store.GetUserByWalletID(context.Background(), "wallet-j")
	if err != nil || byWallet.ID != created.ID {
		t.Errorf("by wallet id: got %v, %v", byWallet, err)
	}
	if _, err := store.GetUserByUsername(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing username: want ErrNotFound, got %v", err)
	}
	if _, err := store.GetUserByWalletID(context.Background(), "wallet-none"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing wallet id: want ErrNotFound, got %v", err)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a, _ := store.CreateUser(ctx, newUser("a", "wallet-a"))
	b, _ := store.CreateUser(ctx, newUser("b", "wallet-b"))
	c, _ := store.CreateUser(ctx, newUser("c", "wallet-c"))

	one := decimal.NewFromInt(1)
	first, _ := store.AppendTransaction(ctx, a.ID, b.ID, one, "first")
	second, _ := store.AppendTransaction(ctx, b.ID, a.ID, one, "second")
	// c is uninvolved, must not appear in a's history
	if _, err := store.AppendTransaction(ctx, c.ID, c.ID, one, "other"); err != nil {
		t.Fatalf("append: %v", err)
	}
	third, _ := store.AppendTransaction(ctx, a.ID, c.ID, one, "third")

	txs, err := store.ListTransactionsForUser(ctx, a.ID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("want 3 transactions for a, got %d", len(txs))
	}
	want := []uint{third.ID, second.ID, first.ID}
	for i, tx := range txs {
		if tx.ID != want[i] {
			t.Errorf("position %d: want id %d got %d", i, want[i], tx.ID)
		}
	}

	limited, err := store.ListTransactionsForUser(ctx, a.ID, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != third.ID {
		t.Errorf("limit 2: got %d entries starting at %d", len(limited), limited[0].ID)
	}
}

func TestTransactExposesStateToCallback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user, _ := store.CreateUser(ctx, newUser("jessica", "wallet-j"))

	err := store.Transact(ctx, func(tx Store) error {
		w, err := tx.GetWalletForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}
		_, err = tx.SetWalletBalance(ctx, user.ID, w.Balance.Add(decimal.NewFromInt(10)))
		return err
	})
	if err != nil {
		t.Fatalf("transact: %v", err)
	}
	w, _ := store.GetWalletByUserID(ctx, user.ID)
	if !w.Balance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("committed balance: want 10 got %s", w.Balance)
	}
}

func TestTransactRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user, _ := store.CreateUser(ctx, newUser("jessica", "wallet-j"))

	boom := errors.New("boom")
	err := store.Transact(ctx, func(tx Store) error {
		if _, err := tx.SetWalletBalance(ctx, user.ID, decimal.NewFromInt(99)); err != nil {
			return err
		}
		if _, err := tx.AppendTransaction(ctx, user.ID, user.ID, decimal.NewFromInt(99), ""); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	w, _ := store.GetWalletByUserID(ctx, user.ID)
	if !w.Balance.Equal(decimal.Zero) {
		t.Errorf("balance survived rollback: %s", w.Balance)
	}
	txs, _ := store.ListTransactionsForUser(ctx, user.ID, 0)
	if len(txs) != 0 {
		t.Errorf("ledger record survived rollback")
	}
}

func TestTransactRollbackRestoresUserIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	first, _ := store.CreateUser(ctx, newUser("jessica", "wallet-j"))

	boom := errors.New("boom")
	err := store.Transact(ctx, func(tx Store) error {
		if _, err := tx.CreateUser(ctx, newUser("ghost", "wallet-g")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if _, err := store.GetUserByUsername(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rolled-back user still present: %v", err)
	}
	// The rolled-back creation must not leave an id gap.
	second, err := store.CreateUser(ctx, newUser("mike", "wallet-m"))
	if err != nil {
		t.Fatalf("create after rollback: %v", err)
	}
	if second.ID != first.ID+1 {
		t.Errorf("want id %d after rollback, got %d", first.ID+1, second.ID)
	}
}

func TestNewTransactionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTransactionID()
		if seen[id] {
			t.Fatalf("duplicate transaction id %s", id)
		}
		seen[id] = true
	}
}

package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal" // Fixed-point decimal for money

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"
)

// MemoryStore is an in-memory Store used by tests and local tooling. A
// single mutex serializes Transact, which is the single-writer
// alternative to row locking: no two transfers ever interleave their
// read-modify-write cycles. Rollback works by snapshotting all state
// before fn runs and restoring it when fn fails.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[uint]domain.User
	wallets   map[uint]domain.Wallet // keyed by owning user id
	txs       []domain.Transaction
	nextUser  uint
	nextTx    uint
	appendErr error // injected failure for the next AppendTransaction
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]domain.User),
		wallets:  make(map[uint]domain.Wallet),
		nextUser: 1,
		nextTx:   1,
	}
}

// FailNextAppend makes the next AppendTransaction fail with err. Used
// by tests to prove the atomic unit rolls back cleanly.
func (s *MemoryStore) FailNextAppend(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendErr = err
}

func (s *MemoryStore) CreateUser(ctx context.Context, nu NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUser(nu)
}

func (s *MemoryStore) createUser(nu NewUser) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == nu.Username || u.Email == nu.Email || u.WalletID == nu.WalletID {
			return nil, ErrConflict
		}
	}
	now := time.Now()
	user := domain.User{
		ID:        s.nextUser,
		Username:  nu.Username,
		Password:  nu.Password,
		Email:     nu.Email,
		FullName:  nu.FullName,
		WalletID:  nu.WalletID,
		Phone:     nu.Phone,
		StudentID: nu.StudentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	wallet := domain.Wallet{
		ID:        s.nextUser,
		UserID:    user.ID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextUser++
	s.users[user.ID] = user
	s.wallets[user.ID] = wallet
	user.Wallet = wallet
	return &user, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getUserByID(id)
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByWalletID(ctx context.Context, walletID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.WalletID == walletID {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetWalletByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getWallet(userID)
}

func (s *MemoryStore) GetWalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getWallet(userID)
}

func (s *MemoryStore) SetWalletBalance(ctx context.Context, userID uint, balance decimal.Decimal) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setWalletBalance(userID, balance)
}

func (s *MemoryStore) AppendTransaction(ctx context.Context, senderID, receiverID uint, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTransaction(senderID, receiverID, amount, note)
}

func (s *MemoryStore) ListTransactionsForUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	// Append order is chronological, so walk backwards for newest-first.
	for i := len(s.txs) - 1; i >= 0; i-- {
		t := s.txs[i]
		if t.SenderID != userID && t.ReceiverID != userID {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Transact serializes the whole unit behind the store mutex and restores
// a pre-transaction snapshot when fn fails, so partial mutations are
// never observable.
func (s *MemoryStore) Transact(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapUsers := make(map[uint]domain.User, len(s.users))
	for k, v := range s.users {
		snapUsers[k] = v
	}
	snapWallets := make(map[uint]domain.Wallet, len(s.wallets))
	for k, v := range s.wallets {
		snapWallets[k] = v
	}
	snapTxs := make([]domain.Transaction, len(s.txs))
	copy(snapTxs, s.txs)
	snapNextUser := s.nextUser
	snapNextTx := s.nextTx

	if err := fn(&memoryTx{s: s}); err != nil {
		s.users = snapUsers
		s.wallets = snapWallets
		s.txs = snapTxs
		s.nextUser = snapNextUser
		s.nextTx = snapNextTx
		return err
	}
	return nil
}

// memoryTx is the transactional view handed to Transact callbacks. The
// parent's mutex is already held, so its methods skip locking.
type memoryTx struct {
	s *MemoryStore
}

func (t *memoryTx) CreateUser(ctx context.Context, nu NewUser) (*domain.User, error) {
	return t.s.createUser(nu)
}

func (t *memoryTx) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	return t.s.getUserByID(id)
}

func (t *memoryTx) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range t.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (t *memoryTx) GetUserByWalletID(ctx context.Context, walletID string) (*domain.User, error) {
	for _, u := range t.s.users {
		if u.WalletID == walletID {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (t *memoryTx) GetWalletByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	return t.s.getWallet(userID)
}

func (t *memoryTx) GetWalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error) {
	return t.s.getWallet(userID)
}

func (t *memoryTx) SetWalletBalance(ctx context.Context, userID uint, balance decimal.Decimal) (*domain.Wallet, error) {
	return t.s.setWalletBalance(userID, balance)
}

func (t *memoryTx) AppendTransaction(ctx context.Context, senderID, receiverID uint, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	return t.s.appendTransaction(senderID, receiverID, amount, note)
}

func (t *memoryTx) ListTransactionsForUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for i := len(t.s.txs) - 1; i >= 0; i-- {
		tx := t.s.txs[i]
		if tx.SenderID != userID && tx.ReceiverID != userID {
			continue
		}
		out = append(out, tx)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (t *memoryTx) Transact(ctx context.Context, fn func(tx Store) error) error {
	return fn(t) // already inside the unit
}

// Unlocked helpers shared by the store and its transactional view.

func (s *MemoryStore) getUserByID(id uint) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) getWallet(userID uint) (*domain.Wallet, error) {
	w, ok := s.wallets[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (s *MemoryStore) setWalletBalance(userID uint, balance decimal.Decimal) (*domain.Wallet, error) {
	w, ok := s.wallets[userID]
	if !ok {
		return nil, ErrNotFound
	}
	w.Balance = balance
	w.UpdatedAt = time.Now()
	s.wallets[userID] = w
	return &w, nil
}

func (s *MemoryStore) appendTransaction(senderID, receiverID uint, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	if s.appendErr != nil {
		err := s.appendErr
		s.appendErr = nil
		return nil, err
	}
	tx := domain.Transaction{
		ID:            s.nextTx,
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Amount:        amount,
		Note:          note,
		Status:        domain.StatusCompleted,
		TransactionID: NewTransactionID(),
		CreatedAt:     time.Now(),
	}
	s.nextTx++
	s.txs = append(s.txs, tx)
	return &tx, nil
}

// Package ledger holds the durable state of the wallet system: users,
// their 1:1 wallets, and the append-only transaction ledger. The Store
// is the transactional boundary for every balance mutation.
package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"        // Unique external transaction identifiers
	"github.com/shopspring/decimal" // Fixed-point decimal for money

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound = errors.New("record not found")                           // Referenced entity absent
	ErrConflict = errors.New("username, email or wallet id already taken") // Uniqueness violation on create
)

// RecentLimit is the default number of transactions returned for the
// "recent" view when the caller does not supply a limit.
const RecentLimit = 5

// NewUser carries the fields needed to create a user. Password must
// already be hashed by the caller.
type NewUser struct {
	Username  string
	Password  string
	Email     string
	FullName  string
	WalletID  string
	Phone     string
	StudentID string
}

// Store is the contract the transaction core depends on. All single
// operations are atomic; multi-step mutations run through Transact so
// they commit or roll back as one unit.
type Store interface {
	// CreateUser inserts the user and its zero-balance wallet as a single
	// unit. A user without a wallet is never observable. Returns
	// ErrConflict when username, email or wallet id is already taken.
	CreateUser(ctx context.Context, nu NewUser) (*domain.User, error)

	GetUserByID(ctx context.Context, id uint) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByWalletID(ctx context.Context, walletID string) (*domain.User, error)

	GetWalletByUserID(ctx context.Context, userID uint) (*domain.Wallet, error)

	// GetWalletForUpdate reads a wallet with a row lock when called inside
	// Transact. Outside a transaction it behaves like GetWalletByUserID.
	GetWalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error)

	// SetWalletBalance overwrites the balance and update timestamp. The
	// caller computes the new value under the serialization discipline
	// provided by Transact plus GetWalletForUpdate.
	SetWalletBalance(ctx context.Context, userID uint, balance decimal.Decimal) (*domain.Wallet, error)

	// AppendTransaction inserts an immutable ledger record with a freshly
	// generated external transaction identifier.
	AppendTransaction(ctx context.Context, senderID, receiverID uint, amount decimal.Decimal, note string) (*domain.Transaction, error)

	// ListTransactionsForUser returns transactions where the user is
	// sender or receiver, newest first. limit <= 0 means no limit.
	ListTransactionsForUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error)

	// Transact runs fn against a transactional view of the store. If fn
	// returns an error every mutation it performed is rolled back.
	Transact(ctx context.Context, fn func(tx Store) error) error
}

// NewTransactionID generates the externally shareable transaction token.
// It is distinct from the internal numeric id so receipts leak no
// sequence information.
func NewTransactionID() string {
	return "TRX-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal" // Fixed-point decimal for money
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row-locking clauses

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"
)

// GormStore is the MySQL-backed Store. Open the gorm.DB with
// TranslateError enabled so duplicate-key violations surface as
// gorm.ErrDuplicatedKey and can be mapped to ErrConflict.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateUser inserts the user together with its zero-balance wallet in
// one database transaction.
func (s *GormStore) CreateUser(ctx context.Context, nu NewUser) (*domain.User, error) {
	user := &domain.User{
		Username:  nu.Username,
		Password:  nu.Password,
		Email:     nu.Email,
		FullName:  nu.FullName,
		WalletID:  nu.WalletID,
		Phone:     nu.Phone,
		StudentID: nu.StudentID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err // Rolls back, no user row
		}
		wallet := &domain.Wallet{UserID: user.ID, Balance: decimal.Zero}
		if err := tx.Create(wallet).Error; err != nil {
			return err // Rolls back, user row disappears with the wallet failure
		}
		user.Wallet = *wallet
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByWalletID(ctx context.Context, walletID string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("wallet_id = ?", walletID).First(&user).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &user, nil
}

func (s *GormStore) GetWalletByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &wallet, nil
}

// GetWalletForUpdate takes a SELECT ... FOR UPDATE row lock. Only
// meaningful inside Transact; outside one it degrades to a plain read.
func (s *GormStore) GetWalletForUpdate(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &wallet, nil
}

func (s *GormStore) SetWalletBalance(ctx context.Context, userID uint, balance decimal.Decimal) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, mapGormErr(err)
	}
	if err := s.db.WithContext(ctx).Model(&wallet).Update("balance", balance).Error; err != nil {
		return nil, err
	}
	wallet.Balance = balance
	return &wallet, nil
}

func (s *GormStore) AppendTransaction(ctx context.Context, senderID, receiverID uint, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	t := &domain.Transaction{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Amount:        amount,
		Note:          note,
		Status:        domain.StatusCompleted,
		TransactionID: NewTransactionID(),
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *GormStore) ListTransactionsForUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	q := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var txs []domain.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Transact wraps gorm's transaction support: fn sees a Store bound to
// the open transaction, and any error rolls everything back.
func (s *GormStore) Transact(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// mapGormErr converts gorm's not-found into the ledger sentinel.
func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

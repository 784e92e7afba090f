// Package processor implements the funds-transfer engine: validate a
// transfer, atomically move the money between two wallets, append the
// ledger record, and hand the result to the notifier.
package processor

import (
	"context"
	"errors"

	"github.com/shopspring/decimal" // Fixed-point decimal for money
	"github.com/sirupsen/logrus"    // Structured logging

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"
	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger"
)

// Transfer failure kinds. Each is terminal for the triggering request;
// nothing is retried and no partial state survives any of them.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive number with at most 2 decimal places")
	ErrSenderNotFound    = errors.New("sender not found")
	ErrReceiverNotFound  = errors.New("receiver not found")
	ErrSelfTransfer      = errors.New("cannot transfer to your own wallet")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// Notifier receives completed transfers for best-effort delivery to any
// live connection of the two involved users.
type Notifier interface {
	NotifyTransaction(senderID, receiverID uint, data any)
}

// Details is a completed transaction enriched with display names for
// presentation. The names are a read-side convenience, not stored.
type Details struct {
	domain.Transaction
	SenderName   string `json:"senderName"`
	ReceiverName string `json:"receiverName"`
}

// Processor executes transfers against a ledger store and announces
// completed ones through an optional notifier.
type Processor struct {
	store    ledger.Store
	notifier Notifier
}

// New builds a Processor. notifier may be nil, in which case completed
// transfers are simply not announced.
func New(store ledger.Store, notifier Notifier) *Processor {
	return &Processor{store: store, notifier: notifier}
}

// ParseAmount validates and normalizes a transfer amount: a positive
// decimal with at most two fractional digits. The returned value is
// exact, never a float.
func ParseAmount(s string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amt.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if amt.Exponent() < -2 {
		return decimal.Zero, ErrInvalidAmount // sub-cent precision would leak or destroy fractional cents
	}
	return amt.Round(2), nil
}

// Transfer moves amount from the caller's wallet to the wallet named by
// receiverWalletID. Validation fails fast before any state is touched;
// the balance mutations and the ledger append then run as one atomic
// unit. Success is returned once the ledger write is durable,
// independent of notification delivery.
func (p *Processor) Transfer(ctx context.Context, senderUserID uint, receiverWalletID, amount, note string) (*Details, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	sender, err := p.store.GetUserByID(ctx, senderUserID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrSenderNotFound
		}
		return nil, err
	}
	receiver, err := p.store.GetUserByWalletID(ctx, receiverWalletID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}
	if receiver.ID == sender.ID {
		return nil, ErrSelfTransfer
	}

	// Fail-fast funds check. Re-checked under the lock below, so a
	// concurrent transfer slipping past this read can never over-spend.
	senderWallet, err := p.store.GetWalletByUserID(ctx, sender.ID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrSenderNotFound
		}
		return nil, err
	}
	if senderWallet.Balance.LessThan(amt) {
		return nil, ErrInsufficientFunds
	}

	var record *domain.Transaction
	err = p.store.Transact(ctx, func(tx ledger.Store) error {
		// Lock both wallet rows in ascending user-id order so two
		// opposing transfers cannot deadlock.
		first, second := sender.ID, receiver.ID
		if second < first {
			first, second = second, first
		}
		firstWallet, err := tx.GetWalletForUpdate(ctx, first)
		if err != nil {
			return err
		}
		secondWallet, err := tx.GetWalletForUpdate(ctx, second)
		if err != nil {
			return err
		}
		sw, rw := firstWallet, secondWallet
		if first != sender.ID {
			sw, rw = secondWallet, firstWallet
		}
		if sw.Balance.LessThan(amt) {
			return ErrInsufficientFunds
		}
		newSender := sw.Balance.Sub(amt).Round(2)
		newReceiver := rw.Balance.Add(amt).Round(2)
		if _, err := tx.SetWalletBalance(ctx, sender.ID, newSender); err != nil {
			return err
		}
		if _, err := tx.SetWalletBalance(ctx, receiver.ID, newReceiver); err != nil {
			return err
		}
		record, err = tx.AppendTransaction(ctx, sender.ID, receiver.ID, amt, note)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientFunds) {
			logrus.WithFields(logrus.Fields{
				"sender_id":   sender.ID,
				"receiver_id": receiver.ID,
				"amount":      amt.StringFixed(2),
				"error":       err.Error(),
			}).Error("Transfer failed")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sender_id":      sender.ID,
		"receiver_id":    receiver.ID,
		"amount":         amt.StringFixed(2),
		"transaction_id": record.TransactionID,
	}).Info("Transfer completed")

	details := &Details{
		Transaction:  *record,
		SenderName:   sender.FullName,
		ReceiverName: receiver.FullName,
	}
	if p.notifier != nil {
		// Best-effort UI hint only; delivery runs off the request path
		// so a stalled connection cannot hold up the caller.
		go p.notifier.NotifyTransaction(sender.ID, receiver.ID, details)
	}
	return details, nil
}

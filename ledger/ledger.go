package ledger

import (
	"encoding/binary"
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/lightningnetwork/lnd/kvdb"

	"github.com/lombard-finance/lbtc-core/types"
)

var (
	// address -> balance
	balancesBucketName = []byte("balances")
	// totalSupplyKey -> supply
	supplyBucketName = []byte("supply")

	totalSupplyKey = []byte("total")
)

// ErrCorruptedLedgerDb the db on disk representation has changed
var ErrCorruptedLedgerDb = errors.New("token ledger db is corrupted")

// Ledger keeps LBTC balances in the same kv backend as the program state, so
// token movements commit atomically with the operation that caused them.
type Ledger struct {
	db kvdb.Backend
}

func NewLedger(db kvdb.Backend) (*Ledger, error) {
	l := &Ledger{db: db}
	if err := l.initBuckets(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) initBuckets() error {
	return kvdb.Batch(l.db, func(tx kvdb.RwTx) error {
		if _, err := tx.CreateTopLevelBucket(balancesBucketName); err != nil {
			return err
		}
		_, err := tx.CreateTopLevelBucket(supplyBucketName)
		return err
	})
}

// MintTo credits amount to the account and grows the total supply.
func (l *Ledger) MintTo(tx kvdb.RwTx, to types.Address, amount uint64) error {
	balances, supply, err := rwBuckets(tx)
	if err != nil {
		return err
	}

	total := readUint64(supply.Get(totalSupplyKey))
	if total+amount < total {
		return errorsmod.Wrap(types.ErrInvalidAmount, "total supply overflows")
	}
	bal := readUint64(balances.Get(to[:]))
	if err := balances.Put(to[:], writeUint64(bal+amount)); err != nil {
		return err
	}
	return supply.Put(totalSupplyKey, writeUint64(total+amount))
}

// Burn debits amount from the account and shrinks the total supply.
func (l *Ledger) Burn(tx kvdb.RwTx, from types.Address, amount uint64) error {
	balances, supply, err := rwBuckets(tx)
	if err != nil {
		return err
	}

	bal := readUint64(balances.Get(from[:]))
	if bal < amount {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "balance %d, burn %d", bal, amount)
	}
	if err := balances.Put(from[:], writeUint64(bal-amount)); err != nil {
		return err
	}
	total := readUint64(supply.Get(totalSupplyKey))
	return supply.Put(totalSupplyKey, writeUint64(total-amount))
}

// Transfer moves amount between two accounts.
func (l *Ledger) Transfer(tx kvdb.RwTx, from, to types.Address, amount uint64) error {
	balances, _, err := rwBuckets(tx)
	if err != nil {
		return err
	}

	fromBal := readUint64(balances.Get(from[:]))
	if fromBal < amount {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "balance %d, transfer %d", fromBal, amount)
	}
	if err := balances.Put(from[:], writeUint64(fromBal-amount)); err != nil {
		return err
	}
	toBal := readUint64(balances.Get(to[:]))
	return balances.Put(to[:], writeUint64(toBal+amount))
}

func (l *Ledger) BalanceOf(tx kvdb.RTx, addr types.Address) (uint64, error) {
	balances := tx.ReadBucket(balancesBucketName)
	if balances == nil {
		return 0, ErrCorruptedLedgerDb
	}
	return readUint64(balances.Get(addr[:])), nil
}

// Balance reads a balance in its own read transaction.
func (l *Ledger) Balance(addr types.Address) (uint64, error) {
	var bal uint64
	err := l.db.View(func(tx kvdb.RTx) error {
		var err error
		bal, err = l.BalanceOf(tx, addr)
		return err
	}, func() {})
	return bal, err
}

// TotalSupply reads the total minted and not yet burned amount.
func (l *Ledger) TotalSupply() (uint64, error) {
	var total uint64
	err := l.db.View(func(tx kvdb.RTx) error {
		supply := tx.ReadBucket(supplyBucketName)
		if supply == nil {
			return ErrCorruptedLedgerDb
		}
		total = readUint64(supply.Get(totalSupplyKey))
		return nil
	}, func() {})
	return total, err
}

func rwBuckets(tx kvdb.RwTx) (walletdb.ReadWriteBucket, walletdb.ReadWriteBucket, error) {
	balances := tx.ReadWriteBucket(balancesBucketName)
	supply := tx.ReadWriteBucket(supplyBucketName)
	if balances == nil || supply == nil {
		return nil, nil, ErrCorruptedLedgerDb
	}
	return balances, supply, nil
}

func readUint64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func writeUint64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

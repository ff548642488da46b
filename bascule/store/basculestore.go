package store

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/lightningnetwork/lnd/kvdb"

	"github.com/lombard-finance/lbtc-core/types"
)

var (
	// dataKey -> types.BasculeData
	dataBucketName = []byte("bascule")
	// deposit id -> types.Deposit
	depositBucketName = []byte("deposits")

	dataKey = []byte("data")
)

// BasculeStore persists the deposit validation state. It shares its backend
// with the LBTC store so a mint and the withdrawal it validates commit
// together.
type BasculeStore struct {
	db kvdb.Backend
}

func NewBasculeStore(db kvdb.Backend) (*BasculeStore, error) {
	s := &BasculeStore{db: db}
	if err := s.initBuckets(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *BasculeStore) initBuckets() error {
	return kvdb.Batch(s.db, func(tx kvdb.RwTx) error {
		buckets := [][]byte{dataBucketName, depositBucketName}
		for _, b := range buckets {
			if _, err := tx.CreateTopLevelBucket(b); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *BasculeStore) Update(f func(tx kvdb.RwTx) error) error {
	return kvdb.Update(s.db, f, func() {})
}

func (s *BasculeStore) View(f func(tx kvdb.RTx) error) error {
	return s.db.View(f, func() {})
}

// GetData loads the bascule state in its own transaction.
func (s *BasculeStore) GetData() (*types.BasculeData, error) {
	var data *types.BasculeData
	err := s.View(func(tx kvdb.RTx) error {
		var err error
		data, err = GetData(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetDeposit loads a deposit in its own transaction.
func (s *BasculeStore) GetDeposit(id types.Hash) (*types.Deposit, error) {
	var d *types.Deposit
	err := s.View(func(tx kvdb.RTx) error {
		var err error
		d, err = GetDeposit(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetData returns ErrDataNotFound before bascule is initialized.
func GetData(tx kvdb.RTx) (*types.BasculeData, error) {
	bucket := tx.ReadBucket(dataBucketName)
	if bucket == nil {
		return nil, ErrCorruptedBasculeDb
	}

	v := bucket.Get(dataKey)
	if v == nil {
		return nil, ErrDataNotFound
	}

	var data types.BasculeData
	if err := rlp.DecodeBytes(v, &data); err != nil {
		return nil, fmt.Errorf("failed to decode bascule data: %w", err)
	}
	return &data, nil
}

func PutData(tx kvdb.RwTx, data *types.BasculeData) error {
	bucket := tx.ReadWriteBucket(dataBucketName)
	if bucket == nil {
		return ErrCorruptedBasculeDb
	}

	b, err := rlp.EncodeToBytes(data)
	if err != nil {
		return fmt.Errorf("failed to encode bascule data: %w", err)
	}
	return bucket.Put(dataKey, b)
}

// GetDeposit never fails on a missing record: deposits nobody reported are
// Unreported.
func GetDeposit(tx kvdb.RTx, id types.Hash) (*types.Deposit, error) {
	bucket := tx.ReadBucket(depositBucketName)
	if bucket == nil {
		return nil, ErrCorruptedBasculeDb
	}

	v := bucket.Get(id[:])
	if v == nil {
		return &types.Deposit{ID: id, State: types.DepositStateUnreported}, nil
	}

	var d types.Deposit
	if err := rlp.DecodeBytes(v, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deposit: %w", err)
	}
	return &d, nil
}

func PutDeposit(tx kvdb.RwTx, d *types.Deposit) error {
	bucket := tx.ReadWriteBucket(depositBucketName)
	if bucket == nil {
		return ErrCorruptedBasculeDb
	}

	b, err := rlp.EncodeToBytes(d)
	if err != nil {
		return fmt.Errorf("failed to encode deposit: %w", err)
	}
	return bucket.Put(d.ID[:], b)
}

package store

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/lightningnetwork/lnd/kvdb"

	"github.com/lombard-finance/lbtc-core/types"
)

var (
	// configKey -> types.ProgramConfig
	configBucketName = []byte("config")
	// payload hash -> types.MintPayload
	mintPayloadBucketName = []byte("mintpayloads")
	// payload hash || creator -> types.ValsetMetadata
	valsetMetadataBucketName = []byte("valsetmetadata")
	// payload hash || creator -> types.ValsetPayload
	valsetPayloadBucketName = []byte("valsetpayloads")
	// index (BE u64) -> types.UnstakeInfo
	unstakeBucketName = []byte("unstakes")

	configKey = []byte("config")
)

// LBTCStore persists the LBTC program records. Reads outside an operation go
// through the View helpers; mutations run inside the caller's transaction.
type LBTCStore struct {
	db kvdb.Backend
}

func NewLBTCStore(db kvdb.Backend) (*LBTCStore, error) {
	s := &LBTCStore{db: db}
	if err := s.initBuckets(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *LBTCStore) initBuckets() error {
	return kvdb.Batch(s.db, func(tx kvdb.RwTx) error {
		buckets := [][]byte{
			configBucketName,
			mintPayloadBucketName,
			valsetMetadataBucketName,
			valsetPayloadBucketName,
			unstakeBucketName,
		}
		for _, b := range buckets {
			if _, err := tx.CreateTopLevelBucket(b); err != nil {
				return err
			}
		}

		return nil
	})
}

// Update runs f in a single read-write transaction. Any error rolls back
// every write made by f.
func (s *LBTCStore) Update(f func(tx kvdb.RwTx) error) error {
	return kvdb.Update(s.db, f, func() {})
}

// View runs f in a read-only transaction.
func (s *LBTCStore) View(f func(tx kvdb.RTx) error) error {
	return s.db.View(f, func() {})
}

func (s *LBTCStore) Backend() kvdb.Backend {
	return s.db
}

func (s *LBTCStore) Close() error {
	return s.db.Close()
}

// GetConfig loads the program config in its own transaction.
func (s *LBTCStore) GetConfig() (*types.ProgramConfig, error) {
	var cfg *types.ProgramConfig
	err := s.View(func(tx kvdb.RTx) error {
		var err error
		cfg, err = GetConfig(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetMintPayload loads a mint payload in its own transaction.
func (s *LBTCStore) GetMintPayload(hash types.Hash) (*types.MintPayload, error) {
	var p *types.MintPayload
	err := s.View(func(tx kvdb.RTx) error {
		var err error
		p, err = GetMintPayload(tx, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetUnstakeInfo loads an unstake entry in its own transaction.
func (s *LBTCStore) GetUnstakeInfo(index uint64) (*types.UnstakeInfo, error) {
	var info *types.UnstakeInfo
	err := s.View(func(tx kvdb.RTx) error {
		var err error
		info, err = GetUnstakeInfo(tx, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// GetConfig returns ErrConfigNotFound before the program is initialized.
func GetConfig(tx kvdb.RTx) (*types.ProgramConfig, error) {
	bucket := tx.ReadBucket(configBucketName)
	if bucket == nil {
		return nil, ErrCorruptedLBTCDb
	}

	v := bucket.Get(configKey)
	if v == nil {
		return nil, ErrConfigNotFound
	}

	var cfg types.ProgramConfig
	if err := rlp.DecodeBytes(v, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func PutConfig(tx kvdb.RwTx, cfg *types.ProgramConfig) error {
	bucket := tx.ReadWriteBucket(configBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	return putRecord(bucket, configKey, cfg)
}

func GetMintPayload(tx kvdb.RTx, hash types.Hash) (*types.MintPayload, error) {
	bucket := tx.ReadBucket(mintPayloadBucketName)
	if bucket == nil {
		return nil, ErrCorruptedLBTCDb
	}

	v := bucket.Get(hash[:])
	if v == nil {
		return nil, ErrMintPayloadNotFound
	}

	var p types.MintPayload
	if err := rlp.DecodeBytes(v, &p); err != nil {
		return nil, fmt.Errorf("failed to decode mint payload: %w", err)
	}
	return &p, nil
}

// CreateMintPayload stores a new payload, failing with
// ErrDuplicateMintPayload if one is already stored under its hash.
func CreateMintPayload(tx kvdb.RwTx, p *types.MintPayload) error {
	bucket := tx.ReadWriteBucket(mintPayloadBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	if bucket.Get(p.Hash[:]) != nil {
		return ErrDuplicateMintPayload
	}
	return putRecord(bucket, p.Hash[:], p)
}

func UpdateMintPayload(tx kvdb.RwTx, p *types.MintPayload) error {
	bucket := tx.ReadWriteBucket(mintPayloadBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	if bucket.Get(p.Hash[:]) == nil {
		return ErrMintPayloadNotFound
	}
	return putRecord(bucket, p.Hash[:], p)
}

func GetValsetMetadata(tx kvdb.RTx, hash types.Hash, creator types.Address) (*types.ValsetMetadata, error) {
	bucket := tx.ReadBucket(valsetMetadataBucketName)
	if bucket == nil {
		return nil, ErrCorruptedLBTCDb
	}

	v := bucket.Get(creatorKey(hash, creator))
	if v == nil {
		return nil, ErrValsetMetadataNotFound
	}

	var m types.ValsetMetadata
	if err := rlp.DecodeBytes(v, &m); err != nil {
		return nil, fmt.Errorf("failed to decode valset metadata: %w", err)
	}
	return &m, nil
}

// CreateValsetMetadata fails with ErrDuplicateValsetMetadata if the creator
// already staged metadata under the hash.
func CreateValsetMetadata(tx kvdb.RwTx, m *types.ValsetMetadata) error {
	bucket := tx.ReadWriteBucket(valsetMetadataBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	key := creatorKey(m.Hash, m.Creator)
	if bucket.Get(key) != nil {
		return ErrDuplicateValsetMetadata
	}
	return putRecord(bucket, key, m)
}

func UpdateValsetMetadata(tx kvdb.RwTx, m *types.ValsetMetadata) error {
	bucket := tx.ReadWriteBucket(valsetMetadataBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	key := creatorKey(m.Hash, m.Creator)
	if bucket.Get(key) == nil {
		return ErrValsetMetadataNotFound
	}
	return putRecord(bucket, key, m)
}

func GetValsetPayload(tx kvdb.RTx, hash types.Hash, creator types.Address) (*types.ValsetPayload, error) {
	bucket := tx.ReadBucket(valsetPayloadBucketName)
	if bucket == nil {
		return nil, ErrCorruptedLBTCDb
	}

	v := bucket.Get(creatorKey(hash, creator))
	if v == nil {
		return nil, ErrValsetPayloadNotFound
	}

	var p types.ValsetPayload
	if err := rlp.DecodeBytes(v, &p); err != nil {
		return nil, fmt.Errorf("failed to decode valset payload: %w", err)
	}
	return &p, nil
}

// CreateValsetPayload fails with ErrDuplicateValsetPayload if the creator
// already has a payload under the hash.
func CreateValsetPayload(tx kvdb.RwTx, p *types.ValsetPayload) error {
	bucket := tx.ReadWriteBucket(valsetPayloadBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	key := creatorKey(p.Hash, p.Creator)
	if bucket.Get(key) != nil {
		return ErrDuplicateValsetPayload
	}
	return putRecord(bucket, key, p)
}

func UpdateValsetPayload(tx kvdb.RwTx, p *types.ValsetPayload) error {
	bucket := tx.ReadWriteBucket(valsetPayloadBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	key := creatorKey(p.Hash, p.Creator)
	if bucket.Get(key) == nil {
		return ErrValsetPayloadNotFound
	}
	return putRecord(bucket, key, p)
}

func GetUnstakeInfo(tx kvdb.RTx, index uint64) (*types.UnstakeInfo, error) {
	bucket := tx.ReadBucket(unstakeBucketName)
	if bucket == nil {
		return nil, ErrCorruptedLBTCDb
	}

	v := bucket.Get(indexKey(index))
	if v == nil {
		return nil, ErrUnstakeInfoNotFound
	}

	var info types.UnstakeInfo
	if err := rlp.DecodeBytes(v, &info); err != nil {
		return nil, fmt.Errorf("failed to decode unstake info: %w", err)
	}
	return &info, nil
}

// AppendUnstakeInfo writes the entry at its index. Entries are never
// overwritten.
func AppendUnstakeInfo(tx kvdb.RwTx, info *types.UnstakeInfo) error {
	bucket := tx.ReadWriteBucket(unstakeBucketName)
	if bucket == nil {
		return ErrCorruptedLBTCDb
	}
	key := indexKey(info.Index)
	if bucket.Get(key) != nil {
		return ErrDuplicateUnstakeInfo
	}
	return putRecord(bucket, key, info)
}

func putRecord(bucket walletdb.ReadWriteBucket, key []byte, v interface{}) error {
	b, err := rlp.EncodeToBytes(v)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return bucket.Put(key, b)
}

func creatorKey(hash types.Hash, creator types.Address) []byte {
	key := make([]byte, 0, types.HashSize+types.AddressSize)
	key = append(key, hash[:]...)
	return append(key, creator[:]...)
}

func indexKey(index uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return b[:]
}

package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/muxury/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

var _ port.KVStore = (*KV)(nil)

// KV is the durable local key-value collaborator, backed by a leveldb
// directory. Cart, wishlist, history and credentials each use their own
// key. A missing or unreadable value is absent, never an error.
type KV struct {
	db *leveldb.DB
}

func NewKV(path string) (*KV, error) {
	const op = "storage.NewKV"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("local storage is open", "op", op, "path", path)
	return &KV{db}, nil
}

func (kv *KV) Load(key string) ([]byte, bool) {
	const op = "KV.Load"

	value, err := kv.db.Get([]byte(key), nil)
	if err != nil {
		if !errors.Is(err, leveldb.ErrNotFound) {
			slog.Error("failed to read key, treating as absent",
				"op", op, "key", key, "err", err)
		}
		return nil, false
	}
	return value, true
}

func (kv *KV) Save(key string, value []byte) error {
	const op = "KV.Save"

	if err := kv.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (kv *KV) Remove(key string) error {
	const op = "KV.Remove"

	if err := kv.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (kv *KV) Close() {
	const op = "KV.Close"
	log := slog.With("op", op)

	log.Info("closing local storage...")
	if err := kv.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("local storage is closed")
}

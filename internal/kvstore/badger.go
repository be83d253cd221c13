package kvstore

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// Badger is an embedded on-disk store
type Badger struct {
	db   *badger.DB
	opts Options
}

// OpenBadger opens (or creates) a badger database in dir.
// An empty dir opens an in-memory database.
func OpenBadger(dir string, opts Options) (*Badger, error) {
	var badgerOpts badger.Options
	if dir == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		badgerOpts = badger.DefaultOptions(dir)
	}

	db, err := badger.Open(badgerOpts.WithLogger(nil))
	if err != nil {
		return nil, unavailable("open", dir, err)
	}
	return &Badger{db: db, opts: opts}, nil
}

// Get implements Store
func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, unavailable("get", key, err)
	}
	return value, nil
}

// Set implements Store
func (b *Badger) Set(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if b.opts.TTL > 0 {
			entry = entry.WithTTL(b.opts.TTL)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

// Delete implements Store
func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return unavailable("delete", key, err)
	}
	return nil
}

// DeletePrefix implements Store
func (b *Badger) DeletePrefix(_ context.Context, prefix string) (int, error) {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false, Prefix: []byte(prefix)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, unavailable("scan", prefix, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	batch := b.db.NewWriteBatch()
	defer batch.Cancel()
	for _, key := range keys {
		if err := batch.Delete(key); err != nil {
			return 0, unavailable("delete", string(key), err)
		}
	}
	if err := batch.Flush(); err != nil {
		return 0, unavailable("delete", prefix, err)
	}
	return len(keys), nil
}

// Close implements Store
func (b *Badger) Close() error {
	return b.db.Close()
}

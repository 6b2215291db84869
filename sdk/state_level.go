package sdk

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelState is the durable State backend used by the CLI host.
type LevelState struct {
	db *leveldb.DB
}

// OpenLevelState opens (or creates) a leveldb database at path.
func OpenLevelState(path string) (*LevelState, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return &LevelState{db: db}, nil
}

func (s *LevelState) Get(key string) (*string, error) {
	data, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	v := string(data)
	return &v, nil
}

// Write applies the batch as one leveldb batch, synced to disk.
func (s *LevelState) Write(b *Batch) error {
	lb := new(leveldb.Batch)
	b.Replay(func(key string, value *string) {
		if value == nil {
			lb.Delete([]byte(key))
			return
		}
		lb.Put([]byte(key), []byte(*value))
	})
	if err := s.db.Write(lb, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to write batch of %d keys: %w", b.Len(), err)
	}
	return nil
}

func (s *LevelState) Close() error {
	return s.db.Close()
}

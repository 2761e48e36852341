// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/pangaea-labs/lockstake/kv"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/stackedmap"
)

const readCacheSize = 2048

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// storageKey locates one storage slot.
type storageKey struct {
	addr lockstake.Address
	key  lockstake.Bytes32
}

func (k storageKey) persistentKey() []byte {
	return append(append(make([]byte, 0, len(k.addr)+len(k.key)), k.addr[:]...), k.key[:]...)
}

// State manages the world state: per-(address, key) raw storage with
// checkpoint/revert semantics. All mutations live in a journal until Commit
// flushes them to the backing store.
type State struct {
	store kv.GetPutter // optional backing store; nil means pure in-memory
	cache *lru.Cache   // raw reads from the backing store
	sm    *stackedmap.StackedMap
}

// New creates a state instance on top of the given backing store.
// A nil store yields an empty, in-memory state.
func New(store kv.GetPutter) *State {
	cache, _ := lru.New(readCacheSize)
	state := &State{
		store: store,
		cache: cache,
	}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.storeGetter(key.(storageKey))
	})
	// the base layer holds all uncommitted writes
	state.sm.Push()
	return state
}

// storeGetter implements stackedmap.MapGetter over cache and backing store.
func (s *State) storeGetter(key storageKey) (any, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(rlp.RawValue), true, nil
	}
	if s.store == nil {
		return rlp.RawValue(nil), true, nil
	}
	raw, err := s.store.Get(key.persistentKey())
	if err != nil {
		if s.store.IsNotFound(err) {
			s.cache.Add(key, rlp.RawValue(nil))
			return rlp.RawValue(nil), true, nil
		}
		return nil, false, err
	}
	s.cache.Add(key, rlp.RawValue(raw))
	return rlp.RawValue(raw), true, nil
}

// GetRawStorage returns the storage value in rlp raw form for the given address and key.
func (s *State) GetRawStorage(addr lockstake.Address, key lockstake.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage sets the storage value in rlp raw form.
func (s *State) SetRawStorage(addr lockstake.Address, key lockstake.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns the 32-byte storage value for the given address and key.
func (s *State) GetStorage(addr lockstake.Address, key lockstake.Bytes32) (lockstake.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return lockstake.Bytes32{}, err
	}
	if len(raw) == 0 {
		return lockstake.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return lockstake.Bytes32{}, &Error{err}
	}
	return lockstake.BytesToBytes32(content), nil
}

// SetStorage sets the 32-byte storage value for the given address and key.
// A zero value clears the slot.
func (s *State) SetStorage(addr lockstake.Address, key, value lockstake.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage sets the storage value encoded by the given enc callback.
func (s *State) EncodeStorage(addr lockstake.Address, key lockstake.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage gets and decodes the storage value via the given dec callback.
func (s *State) DecodeStorage(addr lockstake.Address, key lockstake.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the checkpoint to be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts the state to the given checkpoint.
// Later checkpoints are invalidated.
func (s *State) RevertTo(checkpoint int) {
	s.sm.PopTo(checkpoint)
}

// Commit flushes all journaled writes to the backing store and collapses the
// journal. Outstanding checkpoints are absorbed; the journal is replayed in
// order so the latest write of each key wins.
func (s *State) Commit() error {
	if s.store == nil {
		return nil
	}

	batch := s.store.NewBatch()
	var werr error
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		raw := v.(rlp.RawValue)
		if len(raw) == 0 {
			werr = batch.Delete(key.persistentKey())
		} else {
			werr = batch.Put(key.persistentKey(), raw)
		}
		s.cache.Add(key, raw)
		return werr == nil
	})
	if werr != nil {
		return &Error{werr}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	// start a fresh journal; committed values are now served by the cache
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.storeGetter(key.(storageKey))
	})
	s.sm.Push()
	return nil
}

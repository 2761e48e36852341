// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/lvldb"
)

var (
	testAddr = lockstake.BytesToAddress([]byte("addr"))
	testKey  = lockstake.BytesToBytes32([]byte("key"))
)

func TestStorageRoundTrip(t *testing.T) {
	st := New(nil)

	value := lockstake.BytesToBytes32([]byte("value"))
	st.SetStorage(testAddr, testKey, value)

	got, err := st.GetStorage(testAddr, testKey)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	// clearing the slot
	st.SetStorage(testAddr, testKey, lockstake.Bytes32{})
	got, err = st.GetStorage(testAddr, testKey)
	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCheckpointRevert(t *testing.T) {
	st := New(nil)

	v1 := lockstake.BytesToBytes32([]byte("v1"))
	v2 := lockstake.BytesToBytes32([]byte("v2"))

	st.SetStorage(testAddr, testKey, v1)

	cp := st.NewCheckpoint()
	st.SetStorage(testAddr, testKey, v2)

	got, _ := st.GetStorage(testAddr, testKey)
	assert.Equal(t, v2, got)

	st.RevertTo(cp)
	got, _ = st.GetStorage(testAddr, testKey)
	assert.Equal(t, v1, got)
}

func TestCommitAndReload(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	value := lockstake.BytesToBytes32([]byte("persisted"))

	st := New(db)
	st.SetStorage(testAddr, testKey, value)
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := New(db)
	got, err := st2.GetStorage(testAddr, testKey)
	assert.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestCommitAbsorbsCheckpoints(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	v1 := lockstake.BytesToBytes32([]byte("first"))
	v2 := lockstake.BytesToBytes32([]byte("second"))

	st := New(db)
	st.SetStorage(testAddr, testKey, v1)
	st.NewCheckpoint()
	st.SetStorage(testAddr, testKey, v2)
	require.NoError(t, st.Commit())

	// the latest write wins
	st2 := New(db)
	got, err := st2.GetStorage(testAddr, testKey)
	assert.NoError(t, err)
	assert.Equal(t, v2, got)
}

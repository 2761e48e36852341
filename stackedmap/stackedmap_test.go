// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pangaea-labs/lockstake/stackedmap"
)

func TestStackedMap(t *testing.T) {
	src := make(map[string]string)
	src["base"] = "from-src"

	sm := stackedmap.New(func(key any) (any, bool, error) {
		v, ok := src[key.(string)]
		return v, ok, nil
	})

	// reads through to source
	v, ok, err := sm.Get("base")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from-src", v)

	d0 := sm.Push()
	sm.Put("a", "1")

	d1 := sm.Push()
	sm.Put("a", "2")
	sm.Put("b", "3")

	v, ok, _ = sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	// revert the top level
	sm.PopTo(d1)
	v, ok, _ = sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok, _ = sm.Get("b")
	assert.False(t, ok)

	// revert everything
	sm.PopTo(d0)
	assert.Equal(t, 0, sm.Depth())

	_, ok, _ = sm.Get("a")
	assert.False(t, ok)
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(_ any) (any, bool, error) {
		return nil, false, nil
	})

	sm.Push()
	sm.Put("k1", "v1")
	sm.Push()
	sm.Put("k2", "v2")
	sm.Put("k1", "v3")

	var keys, values []string
	sm.Journal(func(k, v any) bool {
		keys = append(keys, k.(string))
		values = append(values, v.(string))
		return true
	})

	assert.Equal(t, []string{"k1", "k2", "k1"}, keys)
	assert.Equal(t, []string{"v1", "v2", "v3"}, values)
}

package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	migs, err := Load(Runner{}.source())
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "create_user_roadmaps", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "user_roadmaps")
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_SortsAndSkipsUnrelated(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":  {Data: []byte("SELECT 10;")},
		"V2__earlier.sql": {Data: []byte("SELECT 2;")},
		"README.md":       {Data: []byte("notes")},
	}

	migs, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(2), migs[0].Version)
	assert.Equal(t, int64(10), migs[1].Version)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}})
	assert.ErrorContains(t, err, "empty migration file")

	_, err = Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")
}

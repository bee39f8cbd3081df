package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) *Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "social-accounts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewDataset(path)
}

func TestProfiles(t *testing.T) {
	ds := writeDataset(t, `congressperson_name,state,twitter_profile,secondary_twitter_profile
Joe,SP,joe123,
Maria,RJ,,maria2
Ana,MG,ana,ana_alt
`)

	rows, err := ds.Profiles()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "joe123", rows[0].TwitterProfile)
	require.Equal(t, "maria2", rows[1].SecondaryTwitterProfile)
}

func TestProfilesCached(t *testing.T) {
	ds := writeDataset(t, `congressperson_name,state,twitter_profile,secondary_twitter_profile
Joe,SP,joe123,
`)

	_, err := ds.Profiles()
	require.NoError(t, err)

	// the file can go away once the rows are cached
	require.NoError(t, os.Remove(ds.path))

	rows, err := ds.Profiles()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestHandles(t *testing.T) {
	ds := writeDataset(t, `congressperson_name,state,twitter_profile,secondary_twitter_profile
Joe,SP,joe123,
Maria,RJ,,maria2
Ana,MG,ana,ana_alt
`)

	handles, err := ds.Handles()
	require.NoError(t, err)
	require.Equal(t, []string{"joe123", "ana", "maria2", "ana_alt"}, handles)
}

func TestProfilesMissingFile(t *testing.T) {
	ds := NewDataset(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := ds.Profiles()
	require.Error(t, err)
}

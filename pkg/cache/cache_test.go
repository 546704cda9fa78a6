package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadSnapshot_RoundTrips(t *testing.T) {
	snap := Snapshot{
		DefaultProfile: ProfileSnapshot{
			SourcePath: "/config/default.yml",
			Config:     profile.ParsedConfig{},
		},
		MatchFiles: []MatchFileSnapshot{
			{
				SourcePath: "/match/base.yml",
				Content: model.MatchFile{
					TriggerMatches: []model.TriggerMatch{
						{Triggers: []string{":hi"}, Base: model.BaseMatch{
							Effect: model.Effect{Kind: model.EffectText, Text: &model.TextEffect{Body: "hello"}},
						}},
					},
				},
			},
		},
	}
	header := BuildHeader([]string{"/config/default.yml"}, []string{"/match/base.yml"}, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, header, snap))

	gotHeader, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, header.ProfilePaths, gotHeader.ProfilePaths)

	gotSnap, err := ReadSnapshot(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, gotSnap.MatchFiles, 1)
	assert.Equal(t, "hello", gotSnap.MatchFiles[0].Content.TriggerMatches[0].Base.Effect.Text.Body)
}

func TestReadHeader_RejectsBadMagic(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte("not-a-cache-file-at-all")))
	assert.Error(t, err)
}

func TestIsFresh_DetectsNewerSource(t *testing.T) {
	dir := t.TempDir()
	matchPath := filepath.Join(dir, "base.yml")
	require.NoError(t, os.WriteFile(matchPath, []byte("matches: []\n"), 0o644))

	header := Header{MatchFilePaths: []string{matchPath}}
	assert.True(t, IsFresh(header, time.Now().Add(time.Hour), dir))
	assert.False(t, IsFresh(header, time.Now().Add(-time.Hour), dir))
}

func TestIsFresh_DetectsNewProfileFile(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "default.yml"), []byte("label: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "extra.yml"), []byte("label: y\n"), 0o644))

	header := Header{ProfilePaths: []string{filepath.Join(configDir, "default.yml")}}
	assert.False(t, IsFresh(header, time.Now().Add(time.Hour), configDir))
}

package procscan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DoyleJ11/lol-livedata/pkg/lcu"
)

func TestMatches(t *testing.T) {
	assert.True(t, matches("LeagueClientUx.exe", lcu.ProcessNames))
	assert.True(t, matches("leagueclientux.EXE", lcu.ProcessNames))
	assert.True(t, matches("LeagueClientUx.", lcu.ProcessNames))
	assert.False(t, matches("LeagueClient.exe", lcu.ProcessNames))
	assert.False(t, matches("anything", nil))
}

func TestFindArgs_NotRunning(t *testing.T) {
	_, err := Finder{}.FindArgs(context.Background(), "definitely-not-a-process-name")
	assert.ErrorIs(t, err, lcu.ErrProcessNotAvailable)
}

func TestFindArgs_Self(t *testing.T) {
	name := filepath.Base(os.Args[0])
	args, err := Finder{}.FindArgs(context.Background(), name)
	if err != nil {
		t.Skipf("process table not readable here: %v", err)
	}
	assert.NotEmpty(t, args)
}

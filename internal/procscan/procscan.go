// Package procscan finds the League client among running processes.
package procscan

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/DoyleJ11/lol-livedata/pkg/lcu"
)

// Finder implements lcu.ProcessFinder over the host's process table.
type Finder struct{}

var _ lcu.ProcessFinder = Finder{}

func (Finder) FindArgs(ctx context.Context, names ...string) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// exited or not ours to inspect
			continue
		}
		if !matches(name, names) {
			continue
		}
		args, err := p.CmdlineSliceWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("read command line of pid %d: %w", p.Pid, err)
		}
		return args, nil
	}
	return nil, lcu.ErrProcessNotAvailable
}

func matches(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}

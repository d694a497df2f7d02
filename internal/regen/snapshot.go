package regen

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/forge"
)

// Snapshot is the flat list of every path matched by every recorded glob
// pattern, used purely as an equality check against the previous run.
type Snapshot struct {
	data string
}

// String returns the newline-joined file list.
func (s Snapshot) String() string { return s.data }

// Sum64 returns an xxhash fingerprint of the snapshot.
func (s Snapshot) Sum64() uint64 { return xxhash.Sum64String(s.data) }

// Equal reports whether two snapshots describe the same file set. The
// fingerprint comparison short-circuits the common unchanged case.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Sum64() == other.Sum64() && s.data == other.data
}

// CollectSnapshot re-expands every pattern in the glob manifest of the given
// build directory. A missing manifest yields an empty snapshot. Patterns are
// expanded concurrently; the result preserves manifest order, and the
// matches of each pattern are sorted, so the snapshot is deterministic.
func CollectSnapshot(buildDir string) (Snapshot, error) {
	manifest := filepath.Join(buildDir, forge.GlobsFileName)
	data, err := os.ReadFile(manifest)
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, zerr.Wrap(err, "failed to read glob manifest")
	}

	patterns := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			patterns = append(patterns, line)
		}
	}

	expanded := make([]string, len(patterns))
	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())
	for i, pat := range patterns {
		group.Go(func() error {
			matches, err := doublestar.FilepathGlob(pat)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to expand glob"), "pattern", pat)
			}
			sort.Strings(matches)
			expanded[i] = strings.Join(matches, "\n") + "\n"
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{data: strings.Join(expanded, "")}, nil
}

// readSnapshot loads the snapshot recorded by the previous run. ok is false
// when none was recorded.
func readSnapshot(buildDir string) (snap Snapshot, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(buildDir, forge.FilesFileName))
	if os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, zerr.Wrap(err, "failed to read file-set snapshot")
	}
	return Snapshot{data: string(data)}, true, nil
}

// writeSnapshot records the snapshot for the next run.
func writeSnapshot(buildDir string, snap Snapshot) error {
	path := filepath.Join(buildDir, forge.FilesFileName)
	if err := os.WriteFile(path, []byte(snap.data), 0o644); err != nil {
		return zerr.Wrap(err, "failed to write file-set snapshot")
	}
	return nil
}

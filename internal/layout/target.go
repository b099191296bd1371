package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Target describes the ABI target triple and its pointer properties.
type Target struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	PtrSize  int    // bytes
	PtrAlign int    // bytes
}

func X86_64LinuxGNU() Target {
	return Target{
		Triple:   "x86_64-linux-gnu",
		PtrSize:  8,
		PtrAlign: 8,
	}
}

type targetManifest struct {
	Target targetConfig `toml:"target"`
}

type targetConfig struct {
	Triple   string `toml:"triple"`
	PtrSize  int    `toml:"ptr_size"`
	PtrAlign int    `toml:"ptr_align"`
}

// FromManifest reads a target description from an ember.toml manifest.
// Missing fields fall back to the default target.
func FromManifest(path string) (Target, error) {
	var m targetManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Target{}, fmt.Errorf("layout: read target manifest %q: %w", path, err)
	}
	t := X86_64LinuxGNU()
	if m.Target.Triple != "" {
		t.Triple = m.Target.Triple
	}
	if m.Target.PtrSize > 0 {
		t.PtrSize = m.Target.PtrSize
	}
	if m.Target.PtrAlign > 0 {
		t.PtrAlign = m.Target.PtrAlign
	}
	if t.PtrSize != 4 && t.PtrSize != 8 {
		return Target{}, fmt.Errorf("layout: unsupported pointer size %d in %q", t.PtrSize, path)
	}
	return t, nil
}

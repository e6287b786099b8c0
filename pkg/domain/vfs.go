package domain

// VirtualEntry is a file or directory staged for creation.
// An entry with an empty Destination is dead and must not be materialized.
type VirtualEntry struct {
	Destination string
	Content     []byte
	IsFile      bool
}

// Dead reports whether the entry has no destination.
func (e VirtualEntry) Dead() bool {
	return e.Destination == ""
}

// VirtualFS is the staged output tree, built completely before any disk mutation.
type VirtualFS struct {
	Entries []VirtualEntry
}

// Dirs returns the live directory entries in staging order.
func (v *VirtualFS) Dirs() []VirtualEntry {
	return v.filter(false)
}

// Files returns the live file entries in staging order.
func (v *VirtualFS) Files() []VirtualEntry {
	return v.filter(true)
}

func (v *VirtualFS) filter(files bool) []VirtualEntry {
	if v == nil {
		return nil
	}
	var out []VirtualEntry
	for _, e := range v.Entries {
		if e.Dead() || e.IsFile != files {
			continue
		}
		out = append(out, e)
	}
	return out
}

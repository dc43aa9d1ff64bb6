// Package blacklist filters client IPs whose reverse-DNS names match a
// configured set of domain entries. Lookup outcomes are memoized for the
// run and can be seeded from / snapshotted to a persistent cache keyed by
// the blacklist content hash.
package blacklist

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is a loaded blacklist specification: a set of domain names or
// suffixes. A nil *Spec means "no blacklist".
type Spec struct {
	entries []string
	hash    string
}

type yamlSpec struct {
	Domains []string `yaml:"domains"`
}

// LoadSpec reads a blacklist file. An empty path is the "no blacklist"
// sentinel and returns (nil, nil). Files ending in .yml/.yaml are parsed
// as a YAML document with a `domains:` list; anything else is a plain
// list with one entry per line and # comments.
func LoadSpec(path string) (*Spec, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blacklist: read %s: %w", path, err)
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		var doc yamlSpec
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("blacklist: parse %s: %w", path, err)
		}
		raw = doc.Domains
	default:
		scanner := bufio.NewScanner(strings.NewReader(string(data)))
		for scanner.Scan() {
			raw = append(raw, scanner.Text())
		}
	}

	return NewSpec(raw), nil
}

// NewSpec builds a Spec from raw entries. Entries are trimmed, lowercased,
// stripped of trailing root dots, and deduplicated; blanks and comments
// are dropped. Returns nil when nothing usable remains.
func NewSpec(raw []string) *Spec {
	seen := make(map[string]bool, len(raw))
	entries := make([]string, 0, len(raw))
	for _, e := range raw {
		e = strings.TrimSpace(e)
		if e == "" || strings.HasPrefix(e, "#") {
			continue
		}
		e = strings.TrimSuffix(strings.ToLower(e), ".")
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil
	}

	// The hash identifies the entry set, not the file: order and
	// formatting differences must map to the same cache rows.
	sort.Strings(entries)
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e))
		h.Write([]byte{'\n'})
	}

	return &Spec{
		entries: entries,
		hash:    hex.EncodeToString(h.Sum(nil)),
	}
}

// Hash returns the stable cache identity of this blacklist.
func (s *Spec) Hash() string {
	if s == nil {
		return ""
	}
	return s.hash
}

// Len returns the number of entries.
func (s *Spec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Matches reports whether a reverse-DNS name matches any entry. The check
// is a case-insensitive substring match in either direction, so an entry
// matches itself, any subdomain of it, and any name it is contained in.
func (s *Spec) Matches(name string) bool {
	if s == nil {
		return false
	}
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "" {
		return false
	}
	for _, e := range s.entries {
		if strings.Contains(name, e) || strings.Contains(e, name) {
			return true
		}
	}
	return false
}

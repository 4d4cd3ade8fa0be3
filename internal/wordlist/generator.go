// Package wordlist produces the candidate username and password lists the
// credential-guessing probes feed to the external scanner. Lists are cached
// on disk keyed by kind and size class; a cached list is never regenerated,
// so operator-tuned lists survive repeated runs.
package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bytemomo/moray/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Kind distinguishes the two list families a credential probe needs.
type Kind string

const (
	KindUsernames Kind = "usernames"
	KindPasswords Kind = "passwords"
)

// Wordlist is one generated or cached tier.
type Wordlist struct {
	Kind    Kind
	Size    domain.SizeClass
	Path    string
	Entries []string
}

// Generator materializes wordlist tiers into a cache directory.
type Generator struct {
	CacheDir string
}

// New creates a generator writing into cacheDir.
func New(cacheDir string) *Generator { return &Generator{CacheDir: cacheDir} }

// entry counts per size class, seeds included
var sizeCounts = map[Kind]map[domain.SizeClass]int{
	KindUsernames: {domain.SizeSmall: 16, domain.SizeMedium: 64, domain.SizeLarge: 256},
	KindPasswords: {domain.SizeSmall: 32, domain.SizeMedium: 256, domain.SizeLarge: 2048},
}

// Ensure returns the cached tier for (kind, size) or generates it. When the
// cache file exists it is loaded verbatim and nothing is written, so two
// successive calls return byte-identical lists. Regeneration requires the
// operator to delete the file.
func (g *Generator) Ensure(kind Kind, size domain.SizeClass) (Wordlist, error) {
	if err := size.Validate(); err != nil {
		return Wordlist{}, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	path := filepath.Join(g.CacheDir, fmt.Sprintf("%s_%s.txt", kind, size))
	if entries, err := loadFile(path); err == nil {
		if len(entries) == 0 {
			return Wordlist{}, fmt.Errorf("%w: cached list %s is empty", domain.ErrGeneration, path)
		}
		return Wordlist{Kind: kind, Size: size, Path: path, Entries: entries}, nil
	} else if !os.IsNotExist(err) {
		return Wordlist{}, fmt.Errorf("%w: read cache %s: %v", domain.ErrGeneration, path, err)
	}

	entries := generate(kind, sizeCounts[kind][size])
	if len(entries) == 0 {
		return Wordlist{}, fmt.Errorf("%w: no seed data available", domain.ErrGeneration)
	}

	if err := os.MkdirAll(g.CacheDir, 0o755); err != nil {
		return Wordlist{}, fmt.Errorf("%w: create cache dir: %v", domain.ErrGeneration, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(entries, "\n")+"\n"), 0o644); err != nil {
		return Wordlist{}, fmt.Errorf("%w: write %s: %v", domain.ErrGeneration, path, err)
	}

	log.WithFields(log.Fields{
		"kind":    kind,
		"size":    size,
		"entries": len(entries),
		"path":    path,
	}).Info("Wordlist tier generated")
	return Wordlist{Kind: kind, Size: size, Path: path, Entries: entries}, nil
}

// EnsurePair materializes both list kinds for one size class.
func (g *Generator) EnsurePair(size domain.SizeClass) (users, passwords Wordlist, err error) {
	users, err = g.Ensure(KindUsernames, size)
	if err != nil {
		return Wordlist{}, Wordlist{}, err
	}
	passwords, err = g.Ensure(KindPasswords, size)
	if err != nil {
		return Wordlist{}, Wordlist{}, err
	}
	return users, passwords, nil
}

func loadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// generate builds a fixed-length list: seeds first, then pattern entries of
// the form word + numeric suffix + optional special character.
func generate(kind Kind, count int) []string {
	seeds := seedPasswords
	if kind == KindUsernames {
		seeds = seedUsernames
	}

	seen := make(map[string]struct{}, count)
	var out []string
	add := func(s string) {
		if len(out) >= count {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, s := range seeds {
		add(s)
	}

	suffixes := []string{"1", "123", "2024", "2025", "01", "7", "99", "2023"}
	for _, suffix := range suffixes {
		for _, word := range patternWords {
			add(word + suffix)
			for _, sp := range patternSpecials {
				add(word + suffix + sp)
			}
			if len(out) >= count {
				return out
			}
		}
	}

	// Large tiers outgrow the pattern space above; extend suffixes numerically.
	for n := 0; len(out) < count; n++ {
		for _, word := range patternWords {
			add(fmt.Sprintf("%s%d", word, n))
			if len(out) >= count {
				break
			}
		}
	}
	return out
}

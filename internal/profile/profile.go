// Package profile persists player chips and lifetime results between
// sessions as a JSON file.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/lox/blackjack-cli/internal/fileutil"
	"github.com/lox/blackjack-cli/internal/game"
)

// Profile is one player's saved state
type Profile struct {
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Pushes int    `json:"pushes"`
}

// Profiles maps player name to saved state
type Profiles map[string]Profile

// Chips returns the saved balance for name, or fallback when the player
// has no profile yet.
func (p Profiles) Chips(name string, fallback int) int {
	if saved, ok := p[name]; ok {
		return saved.Chips
	}
	return fallback
}

// Record folds a finished session into the player's lifetime totals
func (p Profiles) Record(player *game.Player) {
	saved := p[player.Name]
	saved.Name = player.Name
	saved.Chips = player.Chips
	saved.Wins += player.Results.Wins
	saved.Losses += player.Results.Losses
	saved.Pushes += player.Results.Pushes
	p[player.Name] = saved
}

// Store reads and writes a profiles file
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user profiles file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "blackjack", "profiles.json"), nil
}

// Load reads the profiles file, returning an empty set when it does not
// exist yet.
func (s *Store) Load() (Profiles, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Profiles{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var list []Profile
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	profiles := make(Profiles, len(list))
	for _, p := range list {
		profiles[p.Name] = p
	}
	return profiles, nil
}

// Save writes the profiles file atomically, creating the parent directory
// as needed. Entries are sorted by name so the file diffs cleanly.
func (s *Store) Save(profiles Profiles) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)

	list := make([]Profile, 0, len(profiles))
	for _, name := range names {
		list = append(list, profiles[name])
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return fileutil.WriteFileAtomic(s.path, data, 0644)
}

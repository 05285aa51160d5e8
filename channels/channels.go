// Package channels persists the set of channels the bot listens to.
package channels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
	"golang.org/x/text/cases"
)

// Errors returned by registry operations. Their messages are suitable to send
// to chat as-is.
var (
	ErrAlreadyIn = errors.New("Already in channel!")
	ErrNotIn     = errors.New("Not in channel!")
	ErrNotOwner  = errors.New("Only the channel owner can remove me!")
)

// Registry is a set of channel names mirrored to a JSON file.
type Registry struct {
	mu    sync.Mutex
	path  string
	names []string
}

// Open loads a registry from a JSON array of channel names at path.
// If the file does not exist, it is created containing defaults.
func Open(path string, defaults []string) (*Registry, error) {
	r := &Registry{path: path}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			return nil, fmt.Errorf("couldn't decode channels from %s: %w", path, err)
		}
		r.names = normalize(names)
	case errors.Is(err, fs.ErrNotExist):
		r.names = normalize(defaults)
		if err := r.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("couldn't read channels: %w", err)
	}
	return r, nil
}

// Name normalizes a channel name to the form used in TMI, a lowercase login
// prefixed with #.
func Name(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	return "#" + cases.Fold().String(s)
}

// normalize returns the normalized names in s with duplicates removed.
func normalize(s []string) []string {
	r := make([]string, 0, len(s))
	for _, v := range s {
		v = Name(v)
		if v == "#" || slices.Contains(r, v) {
			continue
		}
		r = append(r, v)
	}
	return r
}

// Has reports whether the registry contains a channel.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.names, Name(name))
}

// List returns the channels in the registry in the order they were added.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.names)
}

// Join adds a channel to the registry.
func (r *Registry) Join(name string) error {
	name = Name(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.names, name) {
		return ErrAlreadyIn
	}
	r.names = append(r.names, name)
	if err := r.save(); err != nil {
		r.names = r.names[:len(r.names)-1]
		return err
	}
	return nil
}

// CanLeave checks whether user may remove a channel from the registry.
// Only the channel's owner, the user whose login is the channel name, may.
func (r *Registry) CanLeave(name, user string) error {
	name = Name(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.names, name) {
		return ErrNotIn
	}
	if name != Name(user) {
		return ErrNotOwner
	}
	return nil
}

// Leave removes a channel from the registry on behalf of user.
func (r *Registry) Leave(name, user string) error {
	if err := r.CanLeave(name, user); err != nil {
		return err
	}
	name = Name(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	k := slices.Index(r.names, name)
	if k < 0 {
		// Lost a race with another Leave.
		return ErrNotIn
	}
	old := r.names
	r.names = slices.Delete(slices.Clone(old), k, k+1)
	if err := r.save(); err != nil {
		r.names = old
		return err
	}
	return nil
}

// save writes the registry to its file. The caller must hold r.mu.
func (r *Registry) save() error {
	b, err := json.Marshal(r.names)
	if err != nil {
		return fmt.Errorf("couldn't encode channels: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("couldn't create channels file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("couldn't write channels: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("couldn't write channels: %w", err)
	}
	if err := os.Rename(f.Name(), r.path); err != nil {
		return fmt.Errorf("couldn't replace channels file: %w", err)
	}
	return nil
}

package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
)

// Favorites tracks favorite record ids in a JSON file.
type Favorites struct {
	path string
}

// NewFavorites stores the favorites list at path.
func NewFavorites(path string) *Favorites {
	return &Favorites{path: path}
}

// List returns the favorite ids, empty on any read error.
func (f *Favorites) List() []int {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}

// Has reports whether id is a favorite.
func (f *Favorites) Has(id int) bool {
	return slices.Contains(f.List(), id)
}

// Add appends id if not already present.
func (f *Favorites) Add(id int) error {
	ids := f.List()
	if slices.Contains(ids, id) {
		return nil
	}
	return f.save(append(ids, id))
}

// Remove drops id from the list.
func (f *Favorites) Remove(id int) error {
	ids := f.List()
	filtered := slices.DeleteFunc(ids, func(v int) bool { return v == id })
	return f.save(filtered)
}

// Toggle flips id's favorite state and reports whether it is now a
// favorite.
func (f *Favorites) Toggle(id int) (bool, error) {
	if f.Has(id) {
		return false, f.Remove(id)
	}
	return true, f.Add(id)
}

func (f *Favorites) save(ids []int) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

package marketplace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSource is the official spicetify extensions listing.
const DefaultSource = "https://api.github.com/repos/spicetify/spicetify-extensions/contents/Extensions"

// Sources is the registry of marketplace repositories. Custom entries
// are GitHub contents API URLs added by the user.
type Sources struct {
	Custom []string `yaml:"repos"`
}

// LoadSources reads the registry at path, returning an empty registry
// when the file does not exist yet.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sources{}, nil
		}
		return nil, fmt.Errorf("load sources %s: %w", path, err)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse sources %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the registry to path, creating the directory as needed.
func (s *Sources) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// All returns the default source followed by the custom ones.
func (s *Sources) All() []string {
	return append([]string{DefaultSource}, s.Custom...)
}

// Add registers a custom repository URL. Duplicates are ignored.
func (s *Sources) Add(url string) {
	for _, existing := range s.Custom {
		if existing == url {
			return
		}
	}
	s.Custom = append(s.Custom, url)
}

// Remove drops a custom repository URL.
func (s *Sources) Remove(url string) {
	for i, existing := range s.Custom {
		if existing == url {
			s.Custom = append(s.Custom[:i], s.Custom[i+1:]...)
			return
		}
	}
}

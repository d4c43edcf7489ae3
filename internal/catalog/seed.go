package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"linkloom/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the data used when no persisted document exists.
type Seed struct {
	Platforms []string   `yaml:"platforms"`
	Folders   []string   `yaml:"folders"`
	Items     []seedItem `yaml:"items"`
}

type seedItem struct {
	ID           string   `yaml:"id"`
	URL          string   `yaml:"url"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	ThumbnailURL string   `yaml:"thumbnailUrl"`
	Platform     string   `yaml:"platform"`
	Tags         []string `yaml:"tags"`
	Folder       string   `yaml:"folder"`
	Summary      string   `yaml:"summary"`
	IsFavorite   bool     `yaml:"isFavorite"`
	// Age is how long before load time the item was created.
	Age string `yaml:"age"`
}

// DefaultSeed returns the embedded seed data.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads seed data from a YAML file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML seed data.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}
	for i, item := range seed.Items {
		if item.Age == "" {
			continue
		}
		if _, err := time.ParseDuration(item.Age); err != nil {
			return Seed{}, fmt.Errorf("seed item %d: invalid age %q: %w", i, item.Age, err)
		}
	}
	return seed, nil
}

// items materializes seed items relative to now, most recent first.
func (s Seed) items(now time.Time) []model.ContentItem {
	out := make([]model.ContentItem, 0, len(s.Items))
	for _, si := range s.Items {
		age, _ := time.ParseDuration(si.Age)
		tags := si.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, model.ContentItem{
			ID:           si.ID,
			URL:          si.URL,
			Title:        si.Title,
			Description:  si.Description,
			ThumbnailURL: si.ThumbnailURL,
			Platform:     si.Platform,
			Tags:         tags,
			Folder:       si.Folder,
			Summary:      si.Summary,
			IsFavorite:   si.IsFavorite,
			CreatedAt:    now.Add(-age).UnixMilli(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// folders returns the sorted union of the seed's folders and the folders
// referenced by items.
func (s Seed) folders(items []model.ContentItem) []string {
	set := make(map[string]struct{})
	for _, item := range items {
		if item.Folder != "" {
			set[item.Folder] = struct{}{}
		}
	}
	for _, f := range s.Folders {
		set[f] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

package replay

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrFixtureNotFound is returned when no response was recorded for a request.
var ErrFixtureNotFound = errors.New("replay: fixture not found")

const manifestName = "manifest.yml"

// Route names match the first path segment after /api/.
const (
	RoutePlot              = "plot"
	RouteFrequencyResponse = "frequency-response"
	RouteEnvelopeDb        = "envelope-db"
	RouteSpectrogram       = "spectrogram"
	RouteCSD               = "csd"
	RouteParameters        = "parameters"
	RouteSNR               = "snr"
	RouteFileURL           = "file-url"
)

// Fixture identifies one recorded response. Bands is 0 for routes without a
// bands query.
type Fixture struct {
	Route      string    `yaml:"route"`
	Key        string    `yaml:"key"`
	Bands      int       `yaml:"bands,omitempty"`
	File       string    `yaml:"file"`
	RecordedAt time.Time `yaml:"recorded_at"`
}

type manifest struct {
	Fixtures []Fixture `yaml:"fixtures"`
}

// Store keeps recorded JSON bodies in a directory, indexed by a YAML manifest.
type Store struct {
	dir string

	mu       sync.RWMutex
	fixtures map[string]Fixture
}

// OpenStore loads the manifest in dir. A missing manifest yields an empty store.
func OpenStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("replay: fixtures dir is empty")
	}
	s := &Store{dir: dir, fixtures: make(map[string]Fixture)}

	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("replay: read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("replay: parse manifest: %w", err)
	}
	for _, f := range m.Fixtures {
		s.fixtures[fixtureID(f.Route, f.Key, f.Bands)] = f
	}
	return s, nil
}

// Dir returns the fixture directory.
func (s *Store) Dir() string { return s.dir }

// Lookup returns the recorded body for a request.
func (s *Store) Lookup(route, key string, bands int) ([]byte, error) {
	s.mu.RLock()
	f, ok := s.fixtures[fixtureID(route, key, bands)]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s %s bands=%d", ErrFixtureNotFound, route, key, bands)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, f.File))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFixtureNotFound, f.File)
	}
	if err != nil {
		return nil, fmt.Errorf("replay: read fixture: %w", err)
	}
	return data, nil
}

// Save writes body as the response for a request and rewrites the manifest.
func (s *Store) Save(route, key string, bands int, body []byte) error {
	f := Fixture{
		Route:      route,
		Key:        key,
		Bands:      bands,
		File:       filepath.Join(route, fixtureFile(key, bands)),
		RecordedAt: time.Now().UTC(),
	}
	path := filepath.Join(s.dir, f.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: create fixture dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("replay: write fixture: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[fixtureID(route, key, bands)] = f
	return s.writeManifestLocked()
}

// Fixtures lists recorded fixtures ordered by route, key and bands.
func (s *Store) Fixtures() []Fixture {
	s.mu.RLock()
	out := make([]Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		out = append(out, f)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Route != out[j].Route {
			return out[i].Route < out[j].Route
		}
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Bands < out[j].Bands
	})
	return out
}

func (s *Store) writeManifestLocked() error {
	m := manifest{Fixtures: make([]Fixture, 0, len(s.fixtures))}
	for _, f := range s.fixtures {
		m.Fixtures = append(m.Fixtures, f)
	}
	sort.Slice(m.Fixtures, func(i, j int) bool { return m.Fixtures[i].File < m.Fixtures[j].File })

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("replay: encode manifest: %w", err)
	}
	tmp := filepath.Join(s.dir, manifestName+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("replay: write manifest: %w", err)
	}
	return os.Rename(tmp, filepath.Join(s.dir, manifestName))
}

func fixtureID(route, key string, bands int) string {
	return route + "\x00" + key + "\x00" + strconv.Itoa(bands)
}

// fixtureFile flattens key into a single file name. The flattening is lossy,
// so a digest of the raw key keeps distinct keys apart.
func fixtureFile(key string, bands int) string {
	sum := sha256.Sum256([]byte(key))
	name := strings.NewReplacer("/", "__", "\\", "__", "..", "_").Replace(key)
	name += "-" + hex.EncodeToString(sum[:4])
	if bands > 0 {
		name += ".b" + strconv.Itoa(bands)
	}
	return name + ".json"
}

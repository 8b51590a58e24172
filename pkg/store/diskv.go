package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/contcal/pkg/people"
)

// Config locates the storage directory.
type Config interface {
	BasePath() string
}

// Persistence stores assignments per ISO date plus small preferences.
type Persistence interface {
	MapAll(ctx context.Context) map[string][]people.Person
	Index(ctx context.Context) *people.Index
	List(ctx context.Context, iso string) []people.Person
	Store(iso string, p people.Person) (people.Person, error)
	Delete(iso, id string) error
	Import(ctx context.Context, idx *people.Index) (int, error)
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv under cfg.BasePath().
func Load(cfg Config, logger *zap.Logger) (Persistence, error) {
	if cfg == nil || strings.TrimSpace(cfg.BasePath()) == "" {
		return nil, errors.New("store: base path required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	basePath := cfg.BasePath()
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		logger:   logger.Named("store"),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	logger   *zap.Logger

	prefsMu sync.Mutex
}

func (p *persistence) read(key string) (people.Person, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return people.Person{}, err
	}
	var person people.Person
	if err := json.Unmarshal(val, &person); err != nil {
		return people.Person{}, err
	}
	if person.ID == "" {
		person.ID = fromSegment(keyToPathTransform(key).FileName)
	}
	return person, nil
}

func (p *persistence) keys(ctx context.Context, prefix string) []string {
	var keys []string
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		if !strings.Contains(key, "/") {
			// Root level files (preferences, temp files) are not assignments.
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *persistence) MapAll(ctx context.Context) map[string][]people.Person {
	all := make(map[string][]people.Person)
	for _, key := range p.keys(ctx, "") {
		iso := fromSegment(keyToPathTransform(key).Path[0])
		person, err := p.read(key)
		if err != nil {
			p.logger.Warn("skipping unreadable assignment", zap.String("key", key), zap.Error(err))
			continue
		}
		all[iso] = append(all[iso], person)
	}
	for iso := range all {
		people.Sort(all[iso])
	}
	return all
}

func (p *persistence) Index(ctx context.Context) *people.Index {
	return people.NewIndex(p.MapAll(ctx))
}

func (p *persistence) List(ctx context.Context, iso string) []people.Person {
	list := make([]people.Person, 0)
	for _, key := range p.keys(ctx, toSegment(iso)+"/") {
		person, err := p.read(key)
		if err != nil {
			p.logger.Warn("skipping unreadable assignment", zap.String("key", key), zap.Error(err))
			continue
		}
		list = append(list, person)
	}
	people.Sort(list)
	return list
}

func (p *persistence) Store(iso string, person people.Person) (people.Person, error) {
	if strings.TrimSpace(iso) == "" {
		return people.Person{}, people.ErrInvalidDate
	}
	if err := person.Validate(); err != nil {
		return people.Person{}, err
	}
	person.EnsureID()
	if person.Created.IsZero() {
		person.Created = time.Now()
	}
	data, err := json.Marshal(person)
	if err != nil {
		return people.Person{}, err
	}
	if err := p.d.Write(toKey(iso, person.ID), data); err != nil {
		return people.Person{}, fmt.Errorf("store: write %s: %w", iso, err)
	}
	return person, nil
}

func (p *persistence) Delete(iso, id string) error {
	key := toKey(iso, id)
	if !p.d.Has(key) {
		return fmt.Errorf("store: %s has no assignment %q: %w", iso, id, os.ErrNotExist)
	}
	return p.d.Erase(key)
}

// Import stores every assignment of idx, including those under malformed
// date keys, and returns how many were written.
func (p *persistence) Import(ctx context.Context, idx *people.Index) (int, error) {
	n := 0
	for _, iso := range idx.Dates() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		for _, person := range idx.AssignmentsFor(iso) {
			if _, err := p.Store(iso, person); err != nil {
				return n, fmt.Errorf("store: import %s/%s: %w", iso, person.ID, err)
			}
			n++
		}
	}
	return n, nil
}

const prefsFile = ".prefs.json"

func (p *persistence) prefsPath() string {
	return filepath.Join(p.basePath, prefsFile)
}

func (p *persistence) loadPrefs() (map[string]string, error) {
	data, err := os.ReadFile(p.prefsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	prefs := map[string]string{}
	if len(data) == 0 {
		return prefs, nil
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Get implements prefs.Store.
func (p *persistence) Get(key string) (string, bool, error) {
	p.prefsMu.Lock()
	defer p.prefsMu.Unlock()
	prefs, err := p.loadPrefs()
	if err != nil {
		return "", false, fmt.Errorf("store: load preferences: %w", err)
	}
	v, ok := prefs[key]
	return v, ok, nil
}

// Set implements prefs.Store.
func (p *persistence) Set(key, value string) error {
	p.prefsMu.Lock()
	defer p.prefsMu.Unlock()
	prefs, err := p.loadPrefs()
	if err != nil {
		return fmt.Errorf("store: load preferences: %w", err)
	}
	prefs[key] = value
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	tmp := p.prefsPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: save preferences: %w", err)
	}
	return os.Rename(tmp, p.prefsPath())
}

// keyToPathTransform maps `<date>/<id>` onto a directory per date.
func keyToPathTransform(s string) *diskv.PathKey {
	dir, file, ok := strings.Cut(s, "/")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{dir},
		FileName: file,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}

func toKey(iso, id string) string {
	return toSegment(iso) + "/" + toSegment(id)
}

// toSegment makes arbitrary date keys and ids safe as path components.
func toSegment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func fromSegment(s string) string {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(b)
}

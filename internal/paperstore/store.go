// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paperstore persists paper records as one JSON file per topic.
//
// The layout under the store root is <slug>/papers_info.json, where the file
// holds a JSON object mapping paper ID to paper record. Saving a topic
// replaces the file wholesale; papers from an earlier search that the new
// search did not return are dropped.
package paperstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/research-server/pkg/types"
)

// FileName is the store file written in every topic directory.
const FileName = "papers_info.json"

var (
	// ErrNotFound is returned by Load when the topic has no store file.
	ErrNotFound = errors.New("no stored papers for topic")

	// ErrCorrupt is returned by Load when the store file is not a valid mapping.
	ErrCorrupt = errors.New("papers data file is corrupted")

	// ErrInvalidTopic is returned when a topic does not yield a usable slug.
	ErrInvalidTopic = errors.New("invalid topic")
)

// Slug derives the directory name for a free-text topic: the topic is
// lowercased, and spaces and path separators become underscores.
//
// Slug is lossy. "Machine Learning", "machine learning" and
// "machine_learning" share the slug "machine_learning", while
// "machine-learning" keeps its hyphen and names a different topic.
func Slug(topic string) string {
	return slugReplacer.Replace(strings.ToLower(topic))
}

var slugReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

func checkSlug(slug string) error {
	switch slug {
	case "", ".", "..":
		return fmt.Errorf("%w: slug %q", ErrInvalidTopic, slug)
	}
	return nil
}

// Store is a handle on a paper store rooted at one directory. Saves to the
// same slug are serialized within the process; writes go through a temporary
// file and a rename so a reader never observes a partially written file.
// Writers in other processes are not coordinated and the last rename wins.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a store rooted at root. The directory is created on the first Save.
func New(root string) *Store {
	return &Store{root: root, locks: make(map[string]*sync.Mutex)}
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// Path returns the store file path for topic.
func (s *Store) Path(topic string) (string, error) {
	slug := Slug(topic)
	if err := checkSlug(slug); err != nil {
		return "", err
	}
	return filepath.Join(s.root, slug, FileName), nil
}

func (s *Store) lockFor(slug string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[slug]
	if !ok {
		l = &sync.Mutex{}
		s.locks[slug] = l
	}
	return l
}

// Save replaces the topic's store file with exactly papers, keyed by ID.
// It creates the store root and the topic directory if absent.
func (s *Store) Save(topic string, papers []types.Paper) error {
	path, err := s.Path(topic)
	if err != nil {
		return err
	}

	byID := make(map[string]types.Paper, len(papers))
	for _, p := range papers {
		byID[p.ID] = p
	}
	data, err := json.MarshalIndent(byID, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling papers: %w", err)
	}

	l := s.lockFor(Slug(topic))
	l.Lock()
	defer l.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating topic directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".papers_info-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing papers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing papers: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Load reads the topic's store file. It returns an error wrapping ErrNotFound
// when the file does not exist and ErrCorrupt when it cannot be decoded.
func (s *Store) Load(topic string) (map[string]types.Paper, error) {
	path, err := s.Path(topic)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, Slug(topic))
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var papers map[string]types.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if papers == nil {
		// A literal "null" is not a mapping.
		return nil, fmt.Errorf("%w: not a JSON object", ErrCorrupt)
	}
	return papers, nil
}

// Topics lists the slugs under the root that contain a store file, in name
// order. A missing root yields no topics.
func (s *Store) Topics() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store root: %w", err)
	}

	var topics []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(s.root, entry.Name(), FileName))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		topics = append(topics, entry.Name())
	}
	return topics, nil
}

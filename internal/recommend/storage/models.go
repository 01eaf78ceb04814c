// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const fileSuffix = ".msgpack.gz"

// ErrModelNotFound is returned when no artifact exists for a model name.
var ErrModelNotFound = errors.New("model not found")

// ErrChecksumMismatch is returned when an artifact fails verification.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ModelMetadata contains information about a stored model.
type ModelMetadata struct {
	// Name is the model name (e.g., "svd").
	Name string `json:"name" msgpack:"name"`

	// Version is the model version (monotonically increasing).
	Version int `json:"version" msgpack:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at" msgpack:"trained_at"`

	// SavedAt is when the model was saved.
	SavedAt time.Time `json:"saved_at" msgpack:"saved_at"`

	// RatingCount is the number of ratings used for training.
	RatingCount int `json:"rating_count" msgpack:"rating_count"`

	// ItemCount is the number of unique items.
	ItemCount int `json:"item_count" msgpack:"item_count"`

	// UserCount is the number of unique users.
	UserCount int `json:"user_count" msgpack:"user_count"`

	// Checksum is the SHA-256 checksum of the uncompressed model data.
	Checksum string `json:"checksum" msgpack:"checksum"`

	// SizeBytes is the compressed model size in bytes.
	SizeBytes int64 `json:"size_bytes" msgpack:"size_bytes"`
}

// FactorModelState is the serializable state of a biased matrix
// factorization model: r(u,i) = mu + b_u + b_i + q_i . p_u.
type FactorModelState struct {
	GlobalMean float64 `msgpack:"global_mean"`

	// UserIndex and ItemIndex map raw IDs to rows in the bias and factor tables.
	UserIndex map[int]int `msgpack:"user_index"`
	ItemIndex map[int]int `msgpack:"item_index"`

	UserBias    []float64   `msgpack:"user_bias"`
	ItemBias    []float64   `msgpack:"item_bias"`
	UserFactors [][]float64 `msgpack:"user_factors"`
	ItemFactors [][]float64 `msgpack:"item_factors"`

	// RatingMin and RatingMax bound estimates.
	RatingMin float64 `msgpack:"rating_min"`
	RatingMax float64 `msgpack:"rating_max"`
}

// Validate checks table shapes.
func (s *FactorModelState) Validate() error {
	if len(s.UserBias) != len(s.UserIndex) || len(s.UserFactors) != len(s.UserIndex) {
		return fmt.Errorf("user tables: %d biases, %d factors for %d users",
			len(s.UserBias), len(s.UserFactors), len(s.UserIndex))
	}
	if len(s.ItemBias) != len(s.ItemIndex) || len(s.ItemFactors) != len(s.ItemIndex) {
		return fmt.Errorf("item tables: %d biases, %d factors for %d items",
			len(s.ItemBias), len(s.ItemFactors), len(s.ItemIndex))
	}
	if s.RatingMax <= s.RatingMin {
		return fmt.Errorf("rating scale [%v, %v] is empty", s.RatingMin, s.RatingMax)
	}

	k := -1
	for _, rows := range [][][]float64{s.UserFactors, s.ItemFactors} {
		for _, row := range rows {
			if k < 0 {
				k = len(row)
			}
			if len(row) != k {
				return fmt.Errorf("factor rows have mixed lengths %d and %d", k, len(row))
			}
		}
	}
	for id, row := range s.UserIndex {
		if row < 0 || row >= len(s.UserBias) {
			return fmt.Errorf("user %d maps to row %d out of range", id, row)
		}
	}
	for id, row := range s.ItemIndex {
		if row < 0 || row >= len(s.ItemBias) {
			return fmt.Errorf("item %d maps to row %d out of range", id, row)
		}
	}
	return nil
}

// Store manages model persistence.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// versions tracks the latest version per model name.
	versions map[string]int
}

// NewStore creates a model store at baseDir, creating the directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}

	all, err := s.scan()
	if err != nil {
		return nil, fmt.Errorf("scan existing models: %w", err)
	}
	for name, versions := range all {
		s.versions[name] = versions[0]
	}
	return s, nil
}

// scan lists every artifact version per model name, newest first.
func (s *Store) scan() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseModelFilename(entry.Name())
		if !ok {
			continue
		}
		out[name] = append(out[name], version)
	}
	for _, versions := range out {
		sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	}
	return out, nil
}

// parseModelFilename splits "svd_v3.msgpack.gz" into ("svd", 3).
func parseModelFilename(filename string) (name string, version int, ok bool) {
	base, found := strings.CutSuffix(filename, fileSuffix)
	if !found {
		return "", 0, false
	}
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:idx], version, true
}

// storedFile is the on-disk format for model files.
type storedFile struct {
	Metadata       ModelMetadata `msgpack:"metadata"`
	CompressedData []byte        `msgpack:"data"`
}

// Save stores data as version of name. The file is written to a temporary
// path and renamed into place.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data interface{}, meta ModelMetadata) error {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid model name %q", name)
	}
	if version < 1 {
		return fmt.Errorf("invalid model version %d", version)
	}

	raw, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()
	meta.Name = name
	meta.Version = version

	file, err := msgpack.Marshal(storedFile{Metadata: meta, CompressedData: compressed.Bytes()})
	if err != nil {
		return fmt.Errorf("encode model file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.modelPath(name, version)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, file, 0o640); err != nil { //nolint:gosec // model artifacts are not secrets
		return fmt.Errorf("write model file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename model file: %w", err)
	}

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}
	return nil
}

// Load decodes a model into target. Version 0 loads the latest version.
func (s *Store) Load(ctx context.Context, name string, version int, target interface{}) (*ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
	}

	sf, err := s.readFile(name, version)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, sf.Metadata.Checksum, checksum)
	}

	if err := msgpack.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &sf.Metadata, nil
}

func (s *Store) readFile(name string, version int) (*storedFile, error) {
	data, err := os.ReadFile(s.modelPath(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrModelNotFound, name, version)
		}
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var sf storedFile
	if err := msgpack.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}
	return &sf, nil
}

// LatestVersion returns the latest version number for a model.
func (s *Store) LatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// ListModels returns metadata for the latest version of every stored model,
// sorted by name. Unreadable files are skipped.
func (s *Store) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	models := make([]ModelMetadata, 0, len(s.versions))
	for name, version := range s.versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sf, err := s.readFile(name, version)
		if err != nil {
			continue
		}
		models = append(models, sf.Metadata)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

// Prune removes all but the newest keep versions of a model.
func (s *Store) Prune(ctx context.Context, name string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}

	all, err := s.scan()
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	versions := all[name]
	for i := keep; i < len(versions); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.Remove(s.modelPath(name, versions[i])); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s v%d: %w", name, versions[i], err)
		}
	}
	return nil
}

func (s *Store) modelPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, fileSuffix))
}

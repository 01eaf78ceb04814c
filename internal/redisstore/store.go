// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomtom215/animerec/internal/recommend"
)

const (
	// scanCount is the COUNT hint for SCAN over rating keys.
	scanCount = 500

	// retireTTL is how long a replaced generation stays readable for loads
	// that resolved it before the switch.
	retireTTL = 10 * time.Minute
)

var (
	// ErrCatalogCorrupt reports an order entry without a matching item.
	ErrCatalogCorrupt = errors.New("redis catalog is inconsistent")

	// ErrNoData is returned when nothing has been saved under the prefix.
	ErrNoData = errors.New("no dataset stored in redis")
)

// Config holds connection settings.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Store is a Redis-backed recommend.DataSource.
type Store struct {
	client redis.UniversalClient
	keys   keys
	logger zerolog.Logger
}

// New connects to Redis and verifies the connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // connection never became usable
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.KeyPrefix, logger), nil
}

// NewWithClient wraps an existing client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWithClient(client redis.UniversalClient, prefix string, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		keys:   newKeys(prefix),
		logger: logger.With().Str("component", "redisstore").Logger(),
	}
}

// Name implements recommend.DataSource.
func (s *Store) Name() string { return "redis" }

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// current resolves the live generation.
func (s *Store) current(ctx context.Context) (generation, error) {
	n, err := s.client.Get(ctx, s.keys.current()).Int64()
	if errors.Is(err, redis.Nil) {
		return generation{}, ErrNoData
	}
	if err != nil {
		return generation{}, fmt.Errorf("failed to read current generation: %w", err)
	}
	return s.keys.generation(n), nil
}

// Generation returns the live generation number.
func (s *Store) Generation(ctx context.Context) (int64, error) {
	g, err := s.current(ctx)
	if err != nil {
		return 0, err
	}
	return g.n, nil
}

// LoadSnapshot implements recommend.SnapshotSource. Both halves come from
// the same generation.
func (s *Store) LoadSnapshot(ctx context.Context) ([]recommend.Item, []recommend.Interaction, error) {
	g, err := s.current(ctx)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.loadCatalog(ctx, g)
	if err != nil {
		return nil, nil, err
	}
	interactions, err := s.loadInteractions(ctx, g)
	if err != nil {
		return nil, nil, err
	}
	return items, interactions, nil
}

// LoadCatalog implements recommend.DataSource.
func (s *Store) LoadCatalog(ctx context.Context) ([]recommend.Item, error) {
	g, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadCatalog(ctx, g)
}

// LoadInteractions implements recommend.DataSource. Results are ordered by
// user then item.
func (s *Store) LoadInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	g, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadInteractions(ctx, g)
}

func (s *Store) loadCatalog(ctx context.Context, g generation) ([]recommend.Item, error) {
	order, err := s.client.ZRange(ctx, g.order(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog order: %w", err)
	}
	encoded, err := s.client.HGetAll(ctx, g.items()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog items: %w", err)
	}

	items := make([]recommend.Item, 0, len(order))
	for _, id := range order {
		raw, ok := encoded[id]
		if !ok {
			return nil, fmt.Errorf("%w: item %s listed but not stored", ErrCatalogCorrupt, id)
		}
		var item recommend.Item
		if err := msgpack.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("failed to decode item %s: %w", id, err)
		}
		items = append(items, item)
	}
	if len(encoded) != len(order) {
		s.logger.Warn().
			Int64("generation", g.n).
			Int("stored", len(encoded)).
			Int("ordered", len(order)).
			Msg("catalog hash has entries missing from the order set; they are ignored")
	}
	return items, nil
}

func (s *Store) loadInteractions(ctx context.Context, g generation) ([]recommend.Interaction, error) {
	var userKeys []string
	iter := s.client.Scan(ctx, 0, g.ratingPattern(), scanCount).Iterator()
	for iter.Next(ctx) {
		userKeys = append(userKeys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan rating keys: %w", err)
	}
	sort.Strings(userKeys)

	cmds := make([]*redis.MapStringStringCmd, len(userKeys))
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, k := range userKeys {
			cmds[i] = p.HGetAll(ctx, k)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	var out []recommend.Interaction
	for i, key := range userKeys {
		userID, err := g.userFromRatingKey(key)
		if err != nil {
			s.logger.Warn().Str("key", key).Msg("skipping rating key with non-numeric user")
			continue
		}
		fields := cmds[i].Val()
		rows := make([]recommend.Interaction, 0, len(fields))
		for field, value := range fields {
			itemID, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("rating key %s: bad item id %q: %w", key, field, err)
			}
			rating, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("rating key %s: bad rating %q: %w", key, value, err)
			}
			rows = append(rows, recommend.Interaction{UserID: userID, ItemID: itemID, Rating: rating})
		}
		sort.Slice(rows, func(a, b int) bool { return rows[a].ItemID < rows[b].ItemID })
		out = append(out, rows...)
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].UserID < out[b].UserID })
	return out, nil
}

// Replace stores a new catalog and rating log as a fresh generation and
// switches readers to it in one MULTI. Readers never see a partly written
// dataset. Duplicate item IDs are rejected with recommend.ErrDataIntegrity.
// Later duplicates of a (user, item) rating overwrite earlier ones.
//
// The replaced generation expires after retireTTL.
func (s *Store) Replace(ctx context.Context, items []recommend.Item, interactions []recommend.Interaction) (int64, error) {
	if _, err := recommend.NewCatalog(items); err != nil {
		return 0, fmt.Errorf("refusing to save catalog: %w", err)
	}

	n, err := s.client.Incr(ctx, s.keys.counter()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate generation: %w", err)
	}
	g := s.keys.generation(n)

	if err := s.write(ctx, g, items, interactions); err != nil {
		s.retire(ctx, g)
		return 0, err
	}

	var previous *redis.StringCmd
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		previous = p.Get(ctx, s.keys.current())
		p.Set(ctx, s.keys.current(), n, 0)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		s.retire(ctx, g)
		return 0, fmt.Errorf("failed to switch generation: %w", err)
	}

	if old, err := previous.Int64(); err == nil && old != n {
		s.retire(ctx, s.keys.generation(old))
	}

	s.logger.Info().
		Int64("generation", n).
		Int("items", len(items)).
		Int("interactions", len(interactions)).
		Msg("redis dataset replaced")
	return n, nil
}

func (s *Store) write(ctx context.Context, g generation, items []recommend.Item, interactions []recommend.Interaction) error {
	fields := make([]interface{}, 0, 2*len(items))
	members := make([]redis.Z, 0, len(items))
	for pos, item := range items {
		raw, err := msgpack.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode item %d: %w", item.ID, err)
		}
		id := strconv.Itoa(item.ID)
		fields = append(fields, id, raw)
		members = append(members, redis.Z{Score: float64(pos), Member: id})
	}

	byUser := make(map[int][]interface{})
	for _, in := range interactions {
		byUser[in.UserID] = append(byUser[in.UserID],
			strconv.Itoa(in.ItemID), strconv.FormatFloat(in.Rating, 'f', -1, 64))
	}

	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		if len(items) > 0 {
			p.HSet(ctx, g.items(), fields...)
			p.ZAdd(ctx, g.order(), members...)
		}
		for userID, f := range byUser {
			p.HSet(ctx, g.ratings(userID), f...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write generation %d: %w", g.n, err)
	}
	return nil
}

// retire sets an expiry on every key of g. Failures are logged; the keys
// are unreachable once the pointer has moved.
func (s *Store) retire(ctx context.Context, g generation) {
	iter := s.client.Scan(ctx, 0, g.pattern(), scanCount).Iterator()
	var batch []string
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
			for _, k := range batch {
				p.Expire(ctx, k, retireTTL)
			}
			return nil
		})
		batch = batch[:0]
		return err
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanCount {
			if err := flush(); err != nil {
				s.logger.Warn().Err(err).Int64("generation", g.n).Msg("failed to retire generation")
				return
			}
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Int64("generation", g.n).Msg("failed to scan retired generation")
		return
	}
	if err := flush(); err != nil {
		s.logger.Warn().Err(err).Int64("generation", g.n).Msg("failed to retire generation")
	}
}

type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = "animerec"
	}
	return keys{prefix: prefix}
}

func (k keys) current() string { return k.prefix + ":current" }
func (k keys) counter() string { return k.prefix + ":generation" }

func (k keys) generation(n int64) generation {
	return generation{n: n, base: k.prefix + ":g" + strconv.FormatInt(n, 10)}
}

// generation names the keys of one stored dataset.
type generation struct {
	n    int64
	base string
}

func (g generation) items() string   { return g.base + ":items" }
func (g generation) order() string   { return g.base + ":items:order" }
func (g generation) pattern() string { return g.base + ":*" }

func (g generation) ratings(userID int) string {
	return g.base + ":ratings:" + strconv.Itoa(userID)
}

func (g generation) ratingPattern() string { return g.base + ":ratings:*" }

func (g generation) userFromRatingKey(key string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(key, g.base+":ratings:"))
}

var _ recommend.SnapshotSource = (*Store)(nil)

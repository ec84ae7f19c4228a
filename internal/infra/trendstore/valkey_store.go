package trendstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
)

// ValkeyStore keeps query counts in a sorted set.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "classifier"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// IncrementQuery implements classifier.TrendingStore.
func (s *ValkeyStore) IncrementQuery(ctx context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build()).Error(); err != nil {
		return err
	}
	if display != "" {
		_ = s.client.Do(ctx, s.client.B().Set().Key(s.displayKey(canonical)).Value(display).Nx().Build()).Error()
	}
	return nil
}

// TopQueries implements classifier.TrendingStore.
func (s *ValkeyStore) TopQueries(ctx context.Context, limit int) ([]classifier.TrendingQuery, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	pairs, err := decodeScores(arr)
	if err != nil {
		return nil, err
	}
	out := make([]classifier.TrendingQuery, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, classifier.TrendingQuery{Query: s.fetchDisplay(ctx, p.member), Count: int64(p.score)})
	}
	return out, nil
}

type scoredMember struct {
	member string
	score  float64
}

// decodeScores accepts both the RESP3 shape ([member, score] per element) and the flat RESP2 one.
func decodeScores(arr []valkey.ValkeyMessage) ([]scoredMember, error) {
	out := make([]scoredMember, 0, len(arr))
	for i := 0; i < len(arr); {
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			member, err := tuple[0].ToString()
			if err != nil {
				return nil, err
			}
			score, err := tuple[1].ToFloat64()
			if err != nil {
				return nil, err
			}
			out = append(out, scoredMember{member: member, score: score})
			i++
			continue
		}
		if i+1 >= len(arr) {
			break
		}
		member, err := arr[i].ToString()
		if err != nil {
			return nil, err
		}
		score, err := arr[i+1].ToFloat64()
		if err != nil {
			return nil, err
		}
		out = append(out, scoredMember{member: member, score: score})
		i += 2
	}
	return out, nil
}

func (s *ValkeyStore) fetchDisplay(ctx context.Context, canonical string) string {
	display, err := s.client.Do(ctx, s.client.B().Get().Key(s.displayKey(canonical)).Build()).ToString()
	if err != nil || display == "" {
		return canonical
	}
	return display
}

func (s *ValkeyStore) trendingKey() string {
	return fmt.Sprintf("%s:trending", s.prefix)
}

func (s *ValkeyStore) displayKey(canonical string) string {
	return fmt.Sprintf("%s:display:%s", s.prefix, canonical)
}

var _ classifier.TrendingStore = (*ValkeyStore)(nil)

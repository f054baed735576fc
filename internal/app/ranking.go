package app

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rinkstats/streaks/internal/domain"
)

func validatePage(page, limit int) error {
	if page < 1 {
		return fmt.Errorf("%w: ranking: page must be at least 1, got %d", domain.ErrInvalidParameter, page)
	}
	if limit < 1 {
		return fmt.Errorf("%w: ranking: limit must be positive, got %d", domain.ErrInvalidParameter, limit)
	}
	return nil
}

// RankAndPaginate sorts the rows by the keys in order, all descending, and returns one page.
// Rows that tie on every key keep their input order.
func RankAndPaginate(rows []domain.AggregateRow, keys []domain.StatKey, page, limit int) ([]domain.AggregateRow, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.AggregateRow) int {
		for _, key := range keys {
			if c := cmp.Compare(b.Stat(key), a.Stat(key)); c != 0 {
				return c
			}
		}
		return 0
	})

	// Checked before multiplying to avoid overflow on huge pages
	if page-1 > len(sorted)/limit {
		return []domain.AggregateRow{}, nil
	}
	offset := (page - 1) * limit
	end := min(offset+limit, len(sorted))
	if offset >= end {
		return []domain.AggregateRow{}, nil
	}

	return sorted[offset:end], nil
}

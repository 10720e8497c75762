// Package ranking orders published posts by community score.
package ranking

import (
	"sort"

	model "devlog-post-service/internal/domain/models"
)

const DefaultPopularLimit = 10

// RankPopular returns at most limit published posts ordered by score, highest
// first. Posts with equal score keep their relative input order. The input
// slice and the posts in it are left untouched.
func RankPopular(posts []*model.Post, limit int) []*model.Post {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	ranked := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if p == nil || p.IsDraft {
			continue
		}
		ranked = append(ranked, p)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

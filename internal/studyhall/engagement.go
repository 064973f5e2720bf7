package studyhall

import (
	"sort"

	"majlis/internal/models"
)

// DefaultTrendingThreshold is the upvote count at which an item starts
// trending. There is no time decay: once an item crosses the threshold it
// stays trending for as long as the upvotes stand.
const DefaultTrendingThreshold = 5

// Annotate sets the Trending flag on each item from its upvote count.
// A threshold below 1 falls back to the default.
func Annotate(items []*models.ContentItem, threshold int) {
	if threshold < 1 {
		threshold = DefaultTrendingThreshold
	}
	for _, item := range items {
		item.Trending = item.UpvoteCount >= threshold
	}
}

// TopTrending returns up to limit trending items, most upvoted first, with
// ties going to the most recently created. The input slice is not reordered.
func TopTrending(items []*models.ContentItem, limit int) []*models.ContentItem {
	trending := make([]*models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Trending {
			trending = append(trending, item)
		}
	}
	sort.SliceStable(trending, func(i, j int) bool {
		if trending[i].UpvoteCount != trending[j].UpvoteCount {
			return trending[i].UpvoteCount > trending[j].UpvoteCount
		}
		return trending[i].CreatedAt.After(trending[j].CreatedAt)
	})
	if limit > 0 && len(trending) > limit {
		trending = trending[:limit]
	}
	return trending
}

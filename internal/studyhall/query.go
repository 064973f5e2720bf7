package studyhall

import (
	"sort"
	"strings"

	"majlis/internal/models"
)

// Feed tabs.
const (
	TabAll      = "all"
	TabMine     = "mine"
	TabSaved    = "saved"
	TabTrending = "trending"
)

// Sort orders.
const (
	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortDay         = "day"
	SortMostUpvoted = "most_upvoted"
	SortMostSaved   = "most_saved"
)

// Options narrows and orders a feed query. Zero values mean "no filter":
// empty Search, nil Day, and TaskType of "" or "all" are all no-ops.
type Options struct {
	Tab      string
	Sort     string
	Search   string
	Day      *int
	TaskType string
}

// NormalizeTab validates a tab value, defaulting empty to "all".
func NormalizeTab(tab string) (string, error) {
	switch tab {
	case "":
		return TabAll, nil
	case TabAll, TabMine, TabSaved, TabTrending:
		return tab, nil
	}
	return "", models.NewValidationError("invalid tab: " + tab)
}

// NormalizeSort validates a sort value, defaulting empty to "newest".
func NormalizeSort(s string) (string, error) {
	switch s {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortDay, SortMostUpvoted, SortMostSaved:
		return s, nil
	}
	return "", models.NewValidationError("invalid sort: " + s)
}

// Query filters then sorts a visible, annotated batch. Filters are
// conjunctive; the search term alone is disjunctive across body, task title,
// and author display name. The saved set carries the viewer's bookmarks for
// the saved tab. The input slice is not mutated.
func Query(items []*models.ContentItem, viewerID uint, saved map[uint]struct{}, opts Options) ([]*models.ContentItem, error) {
	tab, err := NormalizeTab(opts.Tab)
	if err != nil {
		return nil, err
	}
	sortBy, err := NormalizeSort(opts.Sort)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(opts.Search))
	taskType := opts.TaskType
	if taskType == "all" {
		taskType = ""
	}

	out := make([]*models.ContentItem, 0, len(items))
	for _, item := range items {
		switch tab {
		case TabMine:
			if item.UserID != viewerID {
				continue
			}
		case TabSaved:
			if _, ok := saved[item.ID]; !ok {
				continue
			}
		case TabTrending:
			if !item.Trending {
				continue
			}
		}
		if opts.Day != nil && item.DayNumber != *opts.Day {
			continue
		}
		if taskType != "" && item.TaskType != taskType {
			continue
		}
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, sortBy)
	return out, nil
}

func matchesSearch(item *models.ContentItem, needle string) bool {
	return strings.Contains(strings.ToLower(item.Body), needle) ||
		strings.Contains(strings.ToLower(item.TaskTitle), needle) ||
		strings.Contains(strings.ToLower(item.Author.DisplayName), needle)
}

func sortItems(items []*models.ContentItem, sortBy string) {
	newer := func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	}
	switch sortBy {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case SortDay:
		// Ascending by camp day, newest first within a day.
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].DayNumber != items[j].DayNumber {
				return items[i].DayNumber < items[j].DayNumber
			}
			return newer(i, j)
		})
	case SortMostUpvoted:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].UpvoteCount != items[j].UpvoteCount {
				return items[i].UpvoteCount > items[j].UpvoteCount
			}
			return newer(i, j)
		})
	case SortMostSaved:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].SaveCount != items[j].SaveCount {
				return items[i].SaveCount > items[j].SaveCount
			}
			return newer(i, j)
		})
	default: // SortNewest
		sort.SliceStable(items, newer)
	}
}

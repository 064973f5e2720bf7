// Package studyhall implements the in-memory feed pipeline: visibility
// filtering, trending annotation, query filtering/sorting, and pagination.
// Everything here operates on one already-fetched batch; nothing in this
// package performs I/O.
package studyhall

import "majlis/internal/models"

// Visible keeps the items the viewer is allowed to see: public items plus the
// viewer's own private items. This runs before any other filter so that a
// private item can never leak through a tab, a search match, or a count.
func Visible(items []*models.ContentItem, viewerID uint) []*models.ContentItem {
	out := make([]*models.ContentItem, 0, len(items))
	for _, item := range items {
		if !item.IsPrivate || item.UserID == viewerID {
			out = append(out, item)
		}
	}
	return out
}

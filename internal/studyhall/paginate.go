package studyhall

import (
	"encoding/base64"
	"strconv"
	"strings"

	"majlis/internal/models"
)

// Page is one slice of a classic page/limit pagination over an ordered
// sequence.
type Page struct {
	Items      []*models.ContentItem `json:"items"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	TotalItems int                   `json:"total_items"`
	HasNext    bool                  `json:"has_next"`
	HasPrev    bool                  `json:"has_prev"`
}

// CursorPage is one slice of a cursor pagination over the same sequence.
type CursorPage struct {
	Items      []*models.ContentItem `json:"items"`
	NextCursor string                `json:"next_cursor"`
	HasMore    bool                  `json:"has_more"`
}

// Paginate slices an ordered sequence into 1-indexed pages. A page past the
// end returns empty items rather than an error, so a client that deletes its
// way through a list never faults.
func Paginate(items []*models.ContentItem, page, pageSize int) (*Page, error) {
	if pageSize < 1 {
		return nil, models.NewValidationError("page size must be at least 1")
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}, nil
}

// EncodeCursor builds the opaque token for resuming after the given item ID.
func EncodeCursor(lastID uint) string {
	return base64.StdEncoding.EncodeToString([]byte("id:" + strconv.FormatUint(uint64(lastID), 10)))
}

// decodeCursor returns the last-seen ID, or 0 when the token is empty or
// malformed. A bad cursor restarts from the beginning instead of erroring:
// stale tokens from old clients are expected.
func decodeCursor(cursor string) uint {
	if cursor == "" {
		return 0
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	s := string(raw)
	if !strings.HasPrefix(s, "id:") {
		return 0
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "id:"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// CursorPaginate resumes an ordered sequence after the cursor's item and
// returns the next pageSize items. It walks the identical sequence Paginate
// does, so the two views never disagree on order.
func CursorPaginate(items []*models.ContentItem, cursor string, pageSize int) (*CursorPage, error) {
	if pageSize < 1 {
		return nil, models.NewValidationError("page size must be at least 1")
	}

	start := 0
	if lastID := decodeCursor(cursor); lastID != 0 {
		for i, item := range items {
			if item.ID == lastID {
				start = i + 1
				break
			}
		}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	page := &CursorPage{
		Items:   items[start:end],
		HasMore: end < len(items),
	}
	if page.HasMore && len(page.Items) > 0 {
		page.NextCursor = EncodeCursor(page.Items[len(page.Items)-1].ID)
	}
	return page, nil
}

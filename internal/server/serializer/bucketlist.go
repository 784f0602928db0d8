package serializer

import (
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/mdouchement/bucketlist/internal/server/service"
)

// NoItems is rendered in place of the items of an empty bucketlist.
const NoItems = "No bucketlist items available"

// Bucketlist serializes the render of a bucketlist.
func Bucketlist(m *model.Bucketlist) map[string]any {
	return map[string]any{
		"id":            m.ID,
		"name":          m.Name,
		"description":   m.Description,
		"done":          m.Completed,
		"created_by":    m.OwnerID,
		"date_created":  m.CreatedAt.UTC(),
		"date_modified": m.UpdatedAt.UTC(),
	}
}

// BucketlistDetails serializes the render of a bucketlist with its items.
func BucketlistDetails(m *service.BucketlistDetails) map[string]any {
	r := Bucketlist(m.Bucketlist)
	if len(m.Items) == 0 {
		r["items"] = []string{NoItems}
		return r
	}

	r["items"] = Items(m.Items)
	return r
}

// BucketlistPage serializes the render of a page of bucketlists.
func BucketlistPage(m *service.BucketlistPage) map[string]any {
	lists := make([]map[string]any, len(m.Bucketlists))
	for i, l := range m.Bucketlists {
		lists[i] = Bucketlist(l)
	}

	return map[string]any{
		"bucketlists": lists,
		"pagination":  Pagination(m.Pagination),
	}
}

// Pagination serializes the render of a pagination.
func Pagination(m service.Pagination) map[string]any {
	return map[string]any{
		"page":        m.Page,
		"limit":       m.Limit,
		"total":       m.Total,
		"total_pages": m.TotalPages,
		"has_prev":    m.HasPrev,
		"has_next":    m.HasNext,
	}
}

package serializer

import "github.com/mdouchement/bucketlist/internal/model"

// Item serializes the render of a bucketlist item.
func Item(m *model.Item) map[string]any {
	return map[string]any{
		"id":            m.ID,
		"list_id":       m.ListID,
		"name":          m.Name,
		"description":   m.Description,
		"done":          m.Completed,
		"date_created":  m.CreatedAt.UTC(),
		"date_modified": m.UpdatedAt.UTC(),
	}
}

// Items serializes the render of bucketlist items.
func Items(m []*model.Item) []map[string]any {
	items := make([]map[string]any, len(m))
	for i, item := range m {
		items[i] = Item(item)
	}
	return items
}

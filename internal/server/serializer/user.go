package serializer

import "github.com/mdouchement/bucketlist/internal/model"

// User serializes the render of a user.
func User(m *model.User) map[string]any {
	return map[string]any{
		"user_id":    m.ID,
		"username":   m.Username,
		"email":      m.Email,
		"active":     m.Active,
		"admin":      m.Admin,
		"created_on": m.CreatedAt.UTC(),
		"updated_on": m.UpdatedAt.UTC(),
	}
}

// Users serializes the render of users.
func Users(m []*model.User) []map[string]any {
	users := make([]map[string]any, len(m))
	for i, u := range m {
		users[i] = User(u)
	}
	return users
}

package libbl

import (
	"encoding/json"
	"time"
)

type (
	// A Bucketlist is a named list of items owned by a user.
	Bucketlist struct {
		ID          int       `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Done        bool      `json:"done"`
		CreatedBy   int       `json:"created_by"`
		CreatedAt   time.Time `json:"date_created"`
		UpdatedAt   time.Time `json:"date_modified"`
		// Items is only filled when a single bucketlist is fetched.
		Items Items `json:"items,omitempty"`
	}

	// An Item is an activity of a bucketlist.
	Item struct {
		ID          int       `json:"id"`
		ListID      int       `json:"list_id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Done        bool      `json:"done"`
		CreatedAt   time.Time `json:"date_created"`
		UpdatedAt   time.Time `json:"date_modified"`
	}

	// Items is a list of items.
	Items []Item

	// A Pagination describes the position of a page in the search results.
	Pagination struct {
		Page       int  `json:"page"`
		Limit      int  `json:"limit"`
		Total      int  `json:"total"`
		TotalPages int  `json:"total_pages"`
		HasPrev    bool `json:"has_prev"`
		HasNext    bool `json:"has_next"`
	}

	// A BucketlistPage is a page of bucketlists.
	BucketlistPage struct {
		Bucketlists []Bucketlist `json:"bucketlists"`
		Pagination  Pagination   `json:"pagination"`
	}

	// ListParams are the search parameters of bucketlists.
	// Zero values are not sent and the server's defaults apply.
	ListParams struct {
		Query string
		Page  int
		Limit int
	}

	// UpdateBucketlist holds the bucketlist fields to update. Nil fields are left unchanged.
	UpdateBucketlist struct {
		Name        *string `json:"bucketlist,omitempty"`
		Description *string `json:"description,omitempty"`
		Done        *bool   `json:"done,omitempty"`
	}

	// UpdateItem holds the item fields to update. Nil fields are left unchanged.
	UpdateItem struct {
		Name        *string `json:"item,omitempty"`
		Description *string `json:"description,omitempty"`
		Done        *bool   `json:"done,omitempty"`
		ListID      *int    `json:"bucketlist_id,omitempty"`
	}
)

// UnmarshalJSON implements json.Unmarshaler.
// The placeholder rendered for a bucketlist without items is decoded as an empty list.
func (items *Items) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	*items = make(Items, 0, len(raws))
	for _, raw := range raws {
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			var placeholder string
			if json.Unmarshal(raw, &placeholder) == nil {
				continue
			}
			return err
		}
		*items = append(*items, item)
	}
	return nil
}

// String returns a pointer to the given value.
func String(v string) *string {
	return &v
}

// Bool returns a pointer to the given value.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to the given value.
func Int(v int) *int {
	return &v
}

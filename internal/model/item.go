package model

// An Item represents a database record of a bucketlist line.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	ListID      int    `msgpack:"list_id"     storm:"index"`
	Name        string `msgpack:"name"`
	Description string `msgpack:"description"`
	Completed   bool   `msgpack:"completed"   storm:"index"`
	// NameKey enforces the per-list name uniqueness at the storage level.
	NameKey string `msgpack:"name_key" storm:"unique"`
}

// NewItem returns a new incomplete item for the given list.
func NewItem(listID int, name, description string) *Item {
	i := &Item{
		ListID:      listID,
		Description: description,
	}
	i.Rename(name)
	return i
}

// Rename sets the name and its uniqueness key.
func (i *Item) Rename(name string) {
	i.Name = name
	i.NameKey = ScopedNameKey(i.ListID, name)
}

// MoveTo reassigns the item to another list.
func (i *Item) MoveTo(listID int) {
	i.ListID = listID
	i.NameKey = ScopedNameKey(listID, i.Name)
}

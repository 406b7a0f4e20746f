package models

// Reference tables backing the categorical search filters. Rows are small and
// stable; ids are surrogate keys that listings point at.

// PropertyType is the listing category ("아파트", "빌라", "오피스텔", ...).
type PropertyType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TransactionType is the sale/lease mode ("매매", "전세", "월세", ...). The
// name decides which price column of a listing is active.
type TransactionType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// RoomOption is a room-count bucket label ("1개", "2개", "3개 이상", ...).
// Search input like "2" resolves by prefix against these labels.
type RoomOption struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// BathroomOption is a bathroom-count bucket label, same shape as RoomOption.
type BathroomOption struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Theme is a curated listing tag shown as a browse shortcut ("역세권",
// "신축", ...). Listings store their tags denormalized in a JSON array; this
// table only feeds the search-form dropdown.
type Theme struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

package model

// EventCategory represents a bookable category of events as stored in the
// `event_category` table. Every booking made against a category inherits
// the category's duration at creation time. The json tags are omitted
// because these structs are used internally by the repository layer;
// handlers define separate response types.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique category name.
//  Description – optional free-text description (nullable).
//  DurationMin – fixed event duration in minutes, always positive.
type EventCategory struct {
	ID          int     // event_category.id
	Name        string  // event_category.name
	Description *string // event_category.description (nullable)
	DurationMin int     // event_category.duration_min
}

// CategoryOwner maps a category to a lecturer's email address. A category
// may have any number of owners and a lecturer may own any number of
// categories; the relation drives the lecturer's listing scope.
//
// Fields:
//  ID         – primary key identifier.
//  CategoryID – reference to the owned category.
//  OwnerEmail – email of the owning lecturer.
type CategoryOwner struct {
	ID         int    // category_owner.id
	CategoryID int    // category_owner.category_id
	OwnerEmail string // category_owner.owner_email
}

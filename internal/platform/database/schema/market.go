// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// MarketBookTable represents the 'market.book' table
type MarketBookTable struct {
	Table       string
	ID          string
	Title       string
	Author      string
	Description string
	CoverImage  string
	PublishYear string
	Categories  string
	Likes       string
	Position    string
}

// MarketBook is the schema definition for market.book
var MarketBook = MarketBookTable{
	Table:       "market.book",
	ID:          "id",
	Title:       "title",
	Author:      "author",
	Description: "description",
	CoverImage:  "coverimage",
	PublishYear: "publishyear",
	Categories:  "categories",
	Likes:       "likes",
	Position:    "position",
}

// Columns returns all standard column names
func (t MarketBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Description, t.CoverImage, t.PublishYear, t.Categories, t.Likes,
	}
}

// MarketListingTable represents the 'market.listing' table
type MarketListingTable struct {
	Table      string
	ID         string
	BookID     string
	Price      string
	Condition  string
	SellerID   string
	SellerName string
	Position   string
}

// MarketListing is the schema definition for market.listing
var MarketListing = MarketListingTable{
	Table:      "market.listing",
	ID:         "id",
	BookID:     "bookid",
	Price:      "price",
	Condition:  "condition",
	SellerID:   "sellerid",
	SellerName: "sellername",
	Position:   "position",
}

// MarketChapterTable represents the 'market.chapter' table
type MarketChapterTable struct {
	Table    string
	ID       string
	BookID   string
	Title    string
	Position string
}

// MarketChapter is the schema definition for market.chapter
var MarketChapter = MarketChapterTable{
	Table:    "market.chapter",
	ID:       "id",
	BookID:   "bookid",
	Title:    "title",
	Position: "position",
}

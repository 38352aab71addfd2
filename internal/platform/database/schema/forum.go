// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ForumDiscussionTable represents the 'forum.discussion' table
type ForumDiscussionTable struct {
	Table      string
	ID         string
	BookID     string
	ChapterID  string
	Title      string
	Content    string
	AuthorID   string
	AuthorName string
	Likes      string
	CreatedAt  string
}

// ForumDiscussion is the schema definition for forum.discussion
var ForumDiscussion = ForumDiscussionTable{
	Table:      "forum.discussion",
	ID:         "id",
	BookID:     "bookid",
	ChapterID:  "chapterid",
	Title:      "title",
	Content:    "content",
	AuthorID:   "authorid",
	AuthorName: "authorname",
	Likes:      "likes",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t ForumDiscussionTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.ChapterID, t.Title, t.Content, t.AuthorID, t.AuthorName, t.Likes, t.CreatedAt,
	}
}

// ForumCommentTable represents the 'forum.comment' table
type ForumCommentTable struct {
	Table        string
	ID           string
	DiscussionID string
	Content      string
	AuthorID     string
	AuthorName   string
	CreatedAt    string
	Position     string
}

// ForumComment is the schema definition for forum.comment
var ForumComment = ForumCommentTable{
	Table:        "forum.comment",
	ID:           "id",
	DiscussionID: "discussionid",
	Content:      "content",
	AuthorID:     "authorid",
	AuthorName:   "authorname",
	CreatedAt:    "createdat",
	Position:     "position",
}

// ForumDiscussionLikeTable represents the 'forum.discussionlike' table
type ForumDiscussionLikeTable struct {
	Table        string
	DiscussionID string
	UserID       string
}

// ForumDiscussionLike is the schema definition for forum.discussionlike
var ForumDiscussionLike = ForumDiscussionLikeTable{
	Table:        "forum.discussionlike",
	DiscussionID: "discussionid",
	UserID:       "userid",
}

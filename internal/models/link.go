package models

// DefaultFolder is assigned to links saved without an explicit folder.
const DefaultFolder = "default"

// Link represents a saved link. Screenshot holds the raw bytes; the JSON
// boundary renders it as base64 text, null when absent.
type Link struct {
	ID         string `json:"id" db:"id"`
	UserID     string `json:"userId" db:"user_id"`
	URL        string `json:"url" db:"url"`
	Screenshot []byte `json:"screenshot" db:"screenshot"`
	Title      string `json:"title" db:"title"`
	Folder     string `json:"folder" db:"folder"`
	IsPrivate  bool   `json:"isPrivate" db:"is_private"`
	CreatedAt  string `json:"createdAt" db:"created_at"`
	UpdatedAt  string `json:"updatedAt" db:"updated_at"`
}

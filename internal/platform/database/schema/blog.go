package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Pseudo       string
	Mail         string
	PasswordHash string
	Role         string
	Federated    string
	CreatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Pseudo:       "pseudo",
	Mail:         "mail",
	PasswordHash: "password_hash",
	Role:         "role",
	Federated:    "federated",
	CreatedAt:    "created_at",
}

func (t UserTable) Columns() []string {
	return []string{t.ID, t.Pseudo, t.Mail, t.PasswordHash, t.Role, t.Federated, t.CreatedAt}
}

// CategoryTable represents the 'categories' table
type CategoryTable struct {
	Table string
	ID    string
	Name  string
}

// Category is the schema definition for categories
var Category = CategoryTable{
	Table: "categories",
	ID:    "id",
	Name:  "name",
}

func (t CategoryTable) Columns() []string {
	return []string{t.ID, t.Name}
}

// PostTable represents the 'posts' table
type PostTable struct {
	Table      string
	ID         string
	Title      string
	Content    string
	UserID     string
	CategoryID string
	CreatedAt  string
}

// Post is the schema definition for posts
var Post = PostTable{
	Table:      "posts",
	ID:         "id",
	Title:      "title",
	Content:    "content",
	UserID:     "user_id",
	CategoryID: "category_id",
	CreatedAt:  "created_at",
}

func (t PostTable) Columns() []string {
	return []string{t.ID, t.Title, t.Content, t.UserID, t.CategoryID, t.CreatedAt}
}

// CommentTable represents the 'comments' table
type CommentTable struct {
	Table     string
	ID        string
	Content   string
	UserID    string
	PostID    string
	CreatedAt string
}

// Comment is the schema definition for comments
var Comment = CommentTable{
	Table:     "comments",
	ID:        "id",
	Content:   "content",
	UserID:    "user_id",
	PostID:    "post_id",
	CreatedAt: "created_at",
}

func (t CommentTable) Columns() []string {
	return []string{t.ID, t.Content, t.UserID, t.PostID, t.CreatedAt}
}

// FavoriteTable represents the 'favorites' table
type FavoriteTable struct {
	Table  string
	ID     string
	UserID string
	PostID string
}

// Favorite is the schema definition for favorites
var Favorite = FavoriteTable{
	Table:  "favorites",
	ID:     "id",
	UserID: "user_id",
	PostID: "post_id",
}

func (t FavoriteTable) Columns() []string {
	return []string{t.ID, t.UserID, t.PostID}
}

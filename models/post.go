package models

import (
	"io"
	"time"
)

// Post представляет публикацию пользователя.
// Автор и лайки загружаются отдельными запросами и не маппятся sqlx.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	ImageKey  *string   `db:"image_key" json:"-"`            // Ключ файла в S3/MinIO
	ImageURL  *string   `db:"-" json:"image_url,omitempty"` // Публичный путь к изображению
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Author    *User     `db:"-" json:"author,omitempty"`
	Likes     []Like    `db:"-" json:"likes"`
}

// Like - отметка «нравится» пользователя на посте.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Follow - подписка follower на following.
type Follow struct {
	ID          int64     `db:"id" json:"id"`
	FollowerID  int64     `db:"follower_id" json:"follower_id"`
	FollowingID int64     `db:"following_id" json:"following_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Comment - комментарий к посту.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Author    *User     `db:"-" json:"author,omitempty"`
}

// Upload описывает загружаемый файл изображения.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// CommentRequest - тело запроса на создание или изменение комментария.
type CommentRequest struct {
	Content string `json:"content"`
}

package models

// Post строка таблицы posts: счётчики одного поста блога
type Post struct {
	ID         int64  `json:"id"`
	Slug       string `json:"slug"`
	TotalViews int64  `json:"total_views"`
	TotalLikes int64  `json:"total_likes"`
}

// VisitorLike строка таблицы visitor_likes: лайки одного посетителя на одном посте
type VisitorLike struct {
	VisitorID string `json:"visitor_id"`
	PostID    int64  `json:"post_id"`
	Likes     int64  `json:"likes"`
}

// Имена JSON-полей ниже — контракт фронтенда (camelCase), не менять

// PostStats анонимная статистика поста
type PostStats struct {
	Slug       string `json:"slug"`
	TotalViews int64  `json:"totalViews"`
	TotalLikes int64  `json:"totalLikes"`
}

// UserPostStats статистика поста вместе с лайками текущего посетителя
type UserPostStats struct {
	Slug       string `json:"slug"`
	TotalViews int64  `json:"totalViews"`
	TotalLikes int64  `json:"totalLikes"`
	UserLikes  int64  `json:"userLikes"`
}

// LikeResult результат применения лайков (после обеих записей транзакции)
type LikeResult struct {
	TotalLikes int64  `json:"totalLikes"`
	UserLikes  int64  `json:"userLikes"`
	UserID     string `json:"userId"`
	PostID     int64  `json:"postId"`
}

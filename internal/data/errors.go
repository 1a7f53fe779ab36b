package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Article repository sentinels.
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleSlugExists = errors.New("article slug already exists")

	// Member repository sentinels.
	ErrMemberNotFound = errors.New("member not found")
)

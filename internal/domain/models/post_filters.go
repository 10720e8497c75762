package model

type PostFilters struct {
	Search *string
	Tag    *string
	Limit  *int
	Offset *int
}

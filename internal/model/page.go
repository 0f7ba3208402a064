package model

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the fixed number of rows requested per list page.
const PageSize = 20

var ErrUnknownEntityKind = errors.New("unknown_entity_kind")

// EntityKind names a paginated backend collection.
type EntityKind string

const (
	EntityKindUser EntityKind = "users"
	EntityKindJob  EntityKind = "jobs"
)

// ParseEntityKind accepts the collection name in singular or plural form.
func ParseEntityKind(raw string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user", "users":
		return EntityKindUser, nil
	case "job", "jobs":
		return EntityKindJob, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityKind, raw)
	}
}

// FilterParameter is the query parameter carrying the collection's filter.
func (kind EntityKind) FilterParameter() string {
	switch kind {
	case EntityKindUser:
		return "search"
	case EntityKindJob:
		return "status"
	default:
		return ""
	}
}

// PageRequest describes a single navigation, search or filter change. A new
// request is built for every event and discarded once rendered.
type PageRequest struct {
	Kind       EntityKind
	PageNumber int
	Filter     string
}

// NewPageRequest normalizes the page number to at least 1.
func NewPageRequest(kind EntityKind, pageNumber int, filter string) PageRequest {
	if pageNumber < 1 {
		pageNumber = 1
	}
	return PageRequest{Kind: kind, PageNumber: pageNumber, Filter: filter}
}

// HasFilter reports whether the filter should be sent. An empty filter means
// no filter at all.
func (request PageRequest) HasFilter() bool {
	return request.Filter != ""
}

// PageResponse is one page of a backend collection plus pagination metadata.
// Items keep the backend's order.
type PageResponse[T any] struct {
	Items       []T
	TotalCount  int
	CurrentPage int
	TotalPages  int
}

type (
	UserPage = PageResponse[User]
	JobPage  = PageResponse[Job]
)

// NewPageResponse fills in derived metadata the backend left out.
func NewPageResponse[T any](items []T, totalCount int, currentPage int, totalPages int) PageResponse[T] {
	if totalCount < 0 {
		totalCount = 0
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if totalPages <= 0 && totalCount > 0 {
		totalPages = TotalPagesFor(totalCount, PageSize)
	}
	if totalPages < 0 {
		totalPages = 0
	}
	return PageResponse[T]{
		Items:       items,
		TotalCount:  totalCount,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}

// TotalPagesFor returns ceil(totalCount/pageSize).
func TotalPagesFor(totalCount int, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

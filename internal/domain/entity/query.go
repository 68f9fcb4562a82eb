package entity

import (
	"slices"
	"time"
)

// 페이지 크기 제한
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TaskSortField 정렬 가능한 필드
type TaskSortField string

const (
	SortByCreatedAt TaskSortField = "created_at"
	SortByDueDate   TaskSortField = "due_date"
	SortByPriority  TaskSortField = "priority"
	SortByTitle     TaskSortField = "title"
)

// Valid 허용된 정렬 필드인지 확인
func (f TaskSortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByDueDate, SortByPriority, SortByTitle:
		return true
	}
	return false
}

// SortKey 정렬 기준 하나
type SortKey struct {
	Field TaskSortField
	Desc  bool
}

// TaskFilter 작업 목록 필터. 비어 있는 필드는 조건에서 제외됩니다.
type TaskFilter struct {
	Statuses   []TaskStatus
	Priorities []TaskPriority
	AssigneeID string
	Tag        string
	ParentID   string
	RootOnly   bool
	Search     string
	DueBefore  *time.Time
}

// TaskQuery 작업 목록 조회 명세.
// 값 타입이며 With* 메서드는 수정된 복사본을 반환하므로 공유해도 안전합니다.
type TaskQuery struct {
	projectID string
	filter    TaskFilter
	sort      []SortKey
	limit     int
	offset    int
}

// NewTaskQuery 프로젝트 단위 조회 명세를 생성합니다
func NewTaskQuery(projectID string) TaskQuery {
	return TaskQuery{
		projectID: projectID,
		sort:      []SortKey{{Field: SortByCreatedAt, Desc: true}},
		limit:     DefaultPageSize,
	}
}

func (q TaskQuery) ProjectID() string { return q.projectID }
func (q TaskQuery) Limit() int { return q.limit }
func (q TaskQuery) Offset() int { return q.offset }

// Filter 필터 복사본을 반환합니다
func (q TaskQuery) Filter() TaskFilter {
	f := q.filter
	f.Statuses = slices.Clone(q.filter.Statuses)
	f.Priorities = slices.Clone(q.filter.Priorities)
	return f
}

// Sort 정렬 기준 복사본을 반환합니다
func (q TaskQuery) Sort() []SortKey {
	return slices.Clone(q.sort)
}

// WithFilter 필터를 교체한 명세를 반환합니다
func (q TaskQuery) WithFilter(filter TaskFilter) TaskQuery {
	filter.Statuses = slices.Clone(filter.Statuses)
	filter.Priorities = slices.Clone(filter.Priorities)
	q.filter = filter
	return q
}

// WithSort 정렬 기준을 교체한 명세를 반환합니다. 비어 있으면 기존 값을 유지합니다.
func (q TaskQuery) WithSort(keys ...SortKey) TaskQuery {
	if len(keys) > 0 {
		q.sort = slices.Clone(keys)
	}
	return q
}

// WithPage 페이지 크기와 시작 위치를 설정한 명세를 반환합니다
func (q TaskQuery) WithPage(limit, offset int) TaskQuery {
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	q.limit = limit
	q.offset = offset
	return q
}

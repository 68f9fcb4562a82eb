package entity

import "time"

// Project 워크스페이스에 속한 프로젝트.
// CreatorID는 감사 목적이며 접근 제어는 항상 워크스페이스 멤버십으로 판단합니다.
type Project struct {
	ID          string
	WorkspaceID string
	Name        string
	Description string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

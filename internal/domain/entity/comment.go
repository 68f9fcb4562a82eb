package entity

import "time"

// TaskComment 작업 댓글
type TaskComment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskAttachment 작업에 연결된 링크 첨부
type TaskAttachment struct {
	ID         string
	TaskID     string
	UploaderID string
	Name       string
	URL        string
	CreatedAt  time.Time
}

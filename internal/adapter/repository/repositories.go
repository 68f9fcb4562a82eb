package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"gorm.io/gorm"
)

// NewRepositories gorm 기반 레포지토리 컬렉션 생성
func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Transactor: infradb.NewTransactor(db),
		User:       NewUserRepository(db),
		Workspace:  NewWorkspaceRepository(db),
		Member:     NewMemberRepository(db),
		Invite:     NewInviteRepository(db),
		Project:    NewProjectRepository(db),
		Task:       NewTaskRepository(db),
		Comment:    NewCommentRepository(db),
		Attachment: NewAttachmentRepository(db),
		AuditLog:   NewAuditLogRepository(db),
	}
}

// translateDuplicate 유니크 제약 위반을 repository.ErrDuplicate로 변환합니다.
// modernc sqlite 에러는 gorm이 변환하지 않으므로 메시지로도 확인합니다.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return repository.ErrDuplicate
	}
	return err
}

// notFound gorm.ErrRecordNotFound 여부
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// columnsOf 갱신 단위를 중복 없는 컬럼 목록으로 변환합니다
func columnsOf[F ~string](fields []F, columns map[F][]string) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(fields)*2)
	for _, f := range fields {
		cols, ok := columns[f]
		if !ok {
			return nil, fmt.Errorf("알 수 없는 갱신 필드: %s", f)
		}
		for _, c := range cols {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// updateColumns 선택한 컬럼과 updated_at만 기록합니다.
// 일치하는 행이 없으면 새로 만들지 않고 repository.ErrNotFound를 반환합니다.
func updateColumns(tx *gorm.DB, m interface{}, id string, columns []string) error {
	result := tx.Model(m).Where("id = ?", id).Select(columns).Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

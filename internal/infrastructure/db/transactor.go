package db

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor gorm 트랜잭션을 context에 담아 레포지토리와 공유합니다
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor 트랜잭터 생성
func NewTransactor(db *gorm.DB) repository.Transactor {
	return &GormTransactor{db: db}
}

// WithinTransaction ctx에 이미 트랜잭션이 있으면 그대로 사용하고, 없으면 새로 시작합니다.
// fn이 에러를 반환하거나 패닉이 발생하면 롤백됩니다.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn ctx의 트랜잭션 또는 기본 연결을 반환합니다
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blog-service/ddd/infrastructure/database/po"
	"blog-service/internal/resource"
)

type UserDao struct {
	db *gorm.DB
}

func NewUserDao() *UserDao {
	return &UserDao{db: resource.MainDB()}
}

func NewUserDaoWithDB(db *gorm.DB) *UserDao {
	return &UserDao{db: db}
}

func (d *UserDao) GetByID(ctx context.Context, id uint64) (*po.User, error) {
	var p po.User
	err := d.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *UserDao) ListByRoles(ctx context.Context, roles []string) ([]po.User, error) {
	var pos []po.User
	if len(roles) == 0 {
		return pos, nil
	}
	err := d.db.WithContext(ctx).Where("role IN ?", roles).Order("id ASC").Find(&pos).Error
	return pos, err
}

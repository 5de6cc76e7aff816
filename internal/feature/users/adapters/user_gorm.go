// Package adapters はusersフィーチャーのリポジトリ実装とスキーマ定義を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"goal_tracker/internal/feature/users/domain/entity"
	"goal_tracker/internal/feature/users/usecase"
)

// UserModel はusersテーブルの行を表します。
type UserModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Role      string    `gorm:"size:20;not null;default:EMPLOYEE"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// SkillModel はskillsテーブルの行を表します。APIからは参照しません。
type SkillModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"size:255;not null;uniqueIndex"`
	Category    string  `gorm:"size:100;not null"`
	Description *string `gorm:"type:text"`
}

func (SkillModel) TableName() string {
	return "skills"
}

// UserSkillModel はユーザーとスキルの対応（習熟度付き）です。
type UserSkillModel struct {
	ID      string     `gorm:"primaryKey;size:36"`
	UserID  string     `gorm:"size:36;not null;uniqueIndex:idx_user_skill"`
	SkillID string     `gorm:"size:36;not null;uniqueIndex:idx_user_skill"`
	Level   int        `gorm:"not null;default:1"`
	User    UserModel  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Skill   SkillModel `gorm:"foreignKey:SkillID;references:ID;constraint:OnDelete:CASCADE"`
}

func (UserSkillModel) TableName() string {
	return "user_skills"
}

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository は指定されたDB接続でuserGormの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// List は名前順にすべてのユーザーを返します。
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var rows []UserModel
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.User{
			ID:        m.ID,
			Email:     m.Email,
			Name:      m.Name,
			Role:      entity.Role(m.Role),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out, nil
}

// Count はユーザー数を返します。
func (r *userGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

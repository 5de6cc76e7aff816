// Package adapters はgoalsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"goal_tracker/internal/feature/goals/domain/entity"
	"goal_tracker/internal/feature/goals/usecase"
)

// pgForeignKeyViolation はPostgreSQLの外部キー制約違反のSQLSTATEです。
const pgForeignKeyViolation = "23503"

// GoalModel はgoalsテーブルの行を表します。
// タイムスタンプはusecaseで採番するため、GORMの自動設定を無効にしています。
type GoalModel struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Title       string     `gorm:"size:255;not null"`
	Description *string    `gorm:"type:text"`
	Status      string     `gorm:"size:20;not null;index"`
	Priority    string     `gorm:"size:20;not null;index"`
	DueDate     *time.Time `gorm:"index"`
	UserID      string     `gorm:"size:36;not null;index"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false"`
	Owner       ownerModel `gorm:"foreignKey:UserID;references:ID"`

	// 検索用に小文字化したタイトルと説明です。
	// SQLiteのLOWERはASCIIしか変換しないため、検索語と同じくGo側で変換して保存します。
	TitleFold       string `gorm:"type:text;not null;default:''"`
	DescriptionFold string `gorm:"type:text;not null;default:''"`
}

// BeforeCreate は検索用の列を埋めます。
func (m *GoalModel) BeforeCreate(tx *gorm.DB) error {
	m.TitleFold, m.DescriptionFold = foldSearch(m.Title, m.Description)
	return nil
}

func (GoalModel) TableName() string {
	return "goals"
}

// ownerModel はusersテーブルのうちゴールに埋め込む列だけを読み出します。
// AutoMigrateで列定義が変わらないよう、タグはusersフィーチャーのモデルと揃えています。
type ownerModel struct {
	ID    string `gorm:"primaryKey;size:36"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null"`
}

func (ownerModel) TableName() string {
	return "users"
}

// goalGorm はGoalRepositoryインターフェースのGORM実装です。
type goalGorm struct {
	db *gorm.DB
}

// goalGormがGoalRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.GoalRepository = (*goalGorm)(nil)

// NewGoalRepository は指定されたDB接続でgoalGormの新しいインスタンスを生成します。
func NewGoalRepository(db *gorm.DB) *goalGorm {
	return &goalGorm{db: db}
}

// priorityOrder は優先度の高い順（CRITICAL→LOW）に並べるORDER BY句です。
var priorityOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range entity.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	b.WriteString(" ELSE 0 END DESC")
	return b.String()
}()

// withOwner はオーナーのid/name/emailのみをプリロードします。
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

// List はフィルター条件に一致するゴールを優先度降順、作成日時降順で返します。
// 不正なステータスや優先度の値は拒否せず、一致なしとして扱います。
func (r *goalGorm) List(ctx context.Context, f entity.Filter) ([]entity.Goal, error) {
	q := withOwner(r.db.WithContext(ctx))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(foldCase(f.Search)) + "%"
		q = q.Where(`(title_fold LIKE ? ESCAPE '\' OR description_fold LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var rows []GoalModel
	if err := q.Order(priorityOrder).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Goal, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByID はIDでゴールを取得します。
// ゴールが存在しない場合、usecase.ErrGoalNotFoundを返します。
func (r *goalGorm) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	var m GoalModel
	if err := withOwner(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGoalNotFound
		}
		return nil, err
	}
	g := toEntity(m)
	return &g, nil
}

// Create はゴールをデータベースに追加します。
// オーナーが存在しない（外部キー制約違反）場合、usecase.ErrOwnerNotFoundを返します。
func (r *goalGorm) Create(ctx context.Context, g *entity.Goal) error {
	m := toModel(g)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return usecase.ErrOwnerNotFound
		}
		return err
	}
	return nil
}

// Update はゴールの可変フィールドをすべて上書きします。
// nilの説明・期限はNULLとして書き込まれます。
func (r *goalGorm) Update(ctx context.Context, g *entity.Goal) error {
	titleFold, descriptionFold := foldSearch(g.Title, g.Description)
	res := r.db.WithContext(ctx).
		Model(&GoalModel{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{
			"title":       g.Title,
			"description": g.Description,
			"status":      string(g.Status),
			"priority":    string(g.Priority),
			"due_date":    g.DueDate,
			"updated_at":  g.UpdatedAt,

			"title_fold":       titleFold,
			"description_fold": descriptionFold,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrGoalNotFound
	}
	return nil
}

// Delete はゴールを物理削除します。
func (r *goalGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GoalModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrGoalNotFound
	}
	return nil
}

// OwnerExists は指定IDのユーザーが存在するかを返します。
func (r *goalGorm) OwnerExists(ctx context.Context, userID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ownerModel{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func toModel(g *entity.Goal) GoalModel {
	return GoalModel{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Status:      string(g.Status),
		Priority:    string(g.Priority),
		DueDate:     g.DueDate,
		UserID:      g.UserID,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toEntity(m GoalModel) entity.Goal {
	return entity.Goal{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.Status(m.Status),
		Priority:    entity.Priority(m.Priority),
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		UserID:      m.UserID,
		Owner: entity.Owner{
			ID:    m.Owner.ID,
			Name:  m.Owner.Name,
			Email: m.Owner.Email,
		},
	}
}

// foldCase は大文字小文字を区別しない比較のために文字列を小文字化します。
func foldCase(s string) string {
	return strings.ToLower(s)
}

func foldSearch(title string, description *string) (string, string) {
	var desc string
	if description != nil {
		desc = *description
	}
	return foldCase(title), foldCase(desc)
}

// escapeLike はLIKEのワイルドカード文字をエスケープします。
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

package hookup

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type ConnectionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Connection) ([]*types.Connection, error)
	GetByNodeIDs(dbc dbctx.Context, nodeIDs []int64) ([]*types.Connection, error)
	Count(dbc dbctx.Context) (int64, error)
}

type connectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConnectionRepo(db *gorm.DB, baseLog *logger.Logger) ConnectionRepo {
	return &connectionRepo{db: db, log: baseLog.With("repo", "ConnectionRepo")}
}

func (r *connectionRepo) Create(dbc dbctx.Context, rows []*types.Connection) ([]*types.Connection, error) {
	if len(rows) == 0 {
		return []*types.Connection{}, nil
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *connectionRepo) GetByNodeIDs(dbc dbctx.Context, nodeIDs []int64) ([]*types.Connection, error) {
	var out []*types.Connection
	if len(nodeIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("node IN ?", nodeIDs).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *connectionRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Connection{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

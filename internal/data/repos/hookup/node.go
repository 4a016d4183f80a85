package hookup

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type NodeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Node) ([]*types.Node, error)
	List(dbc dbctx.Context) ([]*types.Node, error)
	Count(dbc dbctx.Context) (int64, error)
}

type nodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return &nodeRepo{db: db, log: baseLog.With("repo", "NodeRepo")}
}

func (r *nodeRepo) Create(dbc dbctx.Context, rows []*types.Node) ([]*types.Node, error) {
	if len(rows) == 0 {
		return []*types.Node{}, nil
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *nodeRepo) List(dbc dbctx.Context) ([]*types.Node, error) {
	var out []*types.Node
	if err := dbc.DB(r.db).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Node{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

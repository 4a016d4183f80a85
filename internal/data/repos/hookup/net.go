package hookup

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type NetRepo interface {
	Create(dbc dbctx.Context, rows []*types.Net) ([]*types.Net, error)
	GetByBusIDs(dbc dbctx.Context, busIDs []int64) ([]*types.Net, error)
	Count(dbc dbctx.Context) (int64, error)
}

type netRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNetRepo(db *gorm.DB, baseLog *logger.Logger) NetRepo {
	return &netRepo{db: db, log: baseLog.With("repo", "NetRepo")}
}

func (r *netRepo) Create(dbc dbctx.Context, rows []*types.Net) ([]*types.Net, error) {
	if len(rows) == 0 {
		return []*types.Net{}, nil
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *netRepo) GetByBusIDs(dbc dbctx.Context, busIDs []int64) ([]*types.Net, error) {
	var out []*types.Net
	if len(busIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("bus IN ?", busIDs).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *netRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Net{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

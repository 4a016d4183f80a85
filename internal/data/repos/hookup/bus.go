package hookup

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type BusRepo interface {
	Create(dbc dbctx.Context, rows []*types.Bus) ([]*types.Bus, error)
	List(dbc dbctx.Context) ([]*types.Bus, error)
	Count(dbc dbctx.Context) (int64, error)
}

type busRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusRepo(db *gorm.DB, baseLog *logger.Logger) BusRepo {
	return &busRepo{db: db, log: baseLog.With("repo", "BusRepo")}
}

func (r *busRepo) Create(dbc dbctx.Context, rows []*types.Bus) ([]*types.Bus, error) {
	if len(rows) == 0 {
		return []*types.Bus{}, nil
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *busRepo) List(dbc dbctx.Context) ([]*types.Bus, error) {
	var out []*types.Bus
	if err := dbc.DB(r.db).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *busRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Bus{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

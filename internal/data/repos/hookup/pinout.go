package hookup

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type PinoutRepo interface {
	Create(dbc dbctx.Context, rows []*types.Pinout) ([]*types.Pinout, error)
	GetByConnectionIDs(dbc dbctx.Context, connectionIDs []int64) ([]*types.Pinout, error)
	Count(dbc dbctx.Context) (int64, error)
}

type pinoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPinoutRepo(db *gorm.DB, baseLog *logger.Logger) PinoutRepo {
	return &pinoutRepo{db: db, log: baseLog.With("repo", "PinoutRepo")}
}

func (r *pinoutRepo) Create(dbc dbctx.Context, rows []*types.Pinout) ([]*types.Pinout, error) {
	if len(rows) == 0 {
		return []*types.Pinout{}, nil
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pinoutRepo) GetByConnectionIDs(dbc dbctx.Context, connectionIDs []int64) ([]*types.Pinout, error) {
	var out []*types.Pinout
	if len(connectionIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("connection IN ?", connectionIDs).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pinoutRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Pinout{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

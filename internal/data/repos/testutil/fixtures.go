package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/yungbote/hookupmap/internal/domain"
)

func SeedBus(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Bus {
	tb.Helper()
	row := &types.Bus{Name: name}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed bus %q: %v", name, err)
	}
	return row
}

func SeedNet(tb testing.TB, ctx context.Context, tx *gorm.DB, busID int64, name string) *types.Net {
	tb.Helper()
	row := &types.Net{BusID: busID, Name: name}
	if err := tx.WithContext(ctx).Omit("Bus").Create(row).Error; err != nil {
		tb.Fatalf("seed net %q: %v", name, err)
	}
	return row
}

func SeedNode(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Node {
	tb.Helper()
	row := &types.Node{Name: name}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed node %q: %v", name, err)
	}
	return row
}

func SeedConnection(tb testing.TB, ctx context.Context, tx *gorm.DB, nodeID, busID int64) *types.Connection {
	tb.Helper()
	row := &types.Connection{NodeID: nodeID, BusID: busID}
	if err := tx.WithContext(ctx).Omit("Node", "Bus").Create(row).Error; err != nil {
		tb.Fatalf("seed connection: %v", err)
	}
	return row
}

func SeedPinout(tb testing.TB, ctx context.Context, tx *gorm.DB, connectionID, netID int64, pin string) *types.Pinout {
	tb.Helper()
	row := &types.Pinout{ConnectionID: connectionID, NetID: netID, Pin: pin}
	if err := tx.WithContext(ctx).Omit("Connection", "Net").Create(row).Error; err != nil {
		tb.Fatalf("seed pinout %q: %v", pin, err)
	}
	return row
}

package hookup

import (
	"context"
	"testing"

	"github.com/yungbote/hookupmap/internal/data/repos/testutil"
	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/pointers"
)

func TestBusAndNetRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	busRepo := NewBusRepo(db, testutil.Logger(t))
	netRepo := NewNetRepo(db, testutil.Logger(t))

	busses, err := busRepo.Create(dbc, []*types.Bus{
		{Name: "B1", Signal: pointers.String("CAN")},
		{Name: "B2"},
	})
	if err != nil {
		t.Fatalf("Create busses: %v", err)
	}
	if busses[0].ID == 0 || busses[1].ID == 0 || busses[0].ID == busses[1].ID {
		t.Fatalf("expected distinct ids, got %d and %d", busses[0].ID, busses[1].ID)
	}

	listed, err := busRepo.List(dbc)
	if err != nil || len(listed) != 2 || listed[0].Name != "B1" || *listed[0].Signal != "CAN" {
		t.Fatalf("List: err=%v got=%v", err, listed)
	}

	if _, err := netRepo.Create(dbc, []*types.Net{
		{BusID: busses[0].ID, Name: "CAN_H"},
		{BusID: busses[1].ID, Name: "CAN_H"},
	}); err != nil {
		t.Fatalf("same net name in two busses: %v", err)
	}

	rows, err := netRepo.GetByBusIDs(dbc, []int64{busses[1].ID})
	if err != nil || len(rows) != 1 || rows[0].BusID != busses[1].ID || rows[0].Name != "CAN_H" {
		t.Fatalf("GetByBusIDs: err=%v rows=%v", err, rows)
	}
	if rows, err := netRepo.GetByBusIDs(dbc, nil); err != nil || len(rows) != 0 {
		t.Fatalf("GetByBusIDs(nil): err=%v len=%d", err, len(rows))
	}
	if cnt, err := netRepo.Count(dbc); err != nil || cnt != 2 {
		t.Fatalf("Count: err=%v n=%d", err, cnt)
	}
}

func TestNetRepo_DuplicateInBusRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewNetRepo(db, testutil.Logger(t))
	b := testutil.SeedBus(t, ctx, tx, "B1")

	if _, err := repo.Create(dbc, []*types.Net{{BusID: b.ID, Name: "X"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, []*types.Net{{BusID: b.ID, Name: "X"}}); err == nil {
		t.Fatalf("expected unique violation for duplicate net in one bus")
	}
}

func TestBusRepo_DuplicateNameRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewBusRepo(db, testutil.Logger(t))
	testutil.SeedBus(t, ctx, tx, "B1")

	if _, err := repo.Create(dbc, []*types.Bus{{Name: "B1"}}); err == nil {
		t.Fatalf("expected unique violation for duplicate bus name")
	}
}

func TestNodeConnectionPinoutRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	nodeRepo := NewNodeRepo(db, log)
	connRepo := NewConnectionRepo(db, log)
	pinRepo := NewPinoutRepo(db, log)

	b := testutil.SeedBus(t, ctx, tx, "B1")
	net := testutil.SeedNet(t, ctx, tx, b.ID, "CAN_H")

	nodes, err := nodeRepo.Create(dbc, []*types.Node{{Name: "ECU1", Location: pointers.String("bay 2")}})
	if err != nil {
		t.Fatalf("Create node: %v", err)
	}
	if got, err := nodeRepo.List(dbc); err != nil || len(got) != 1 || *got[0].Location != "bay 2" {
		t.Fatalf("List: err=%v got=%v", err, got)
	}

	conns, err := connRepo.Create(dbc, []*types.Connection{{
		Name:      pointers.String("J1"),
		NodeID:    nodes[0].ID,
		BusID:     b.ID,
		IntCable:  pointers.Bool(true),
		Direction: pointers.String("IO"),
	}})
	if err != nil {
		t.Fatalf("Create connection: %v", err)
	}
	if rows, err := connRepo.GetByNodeIDs(dbc, []int64{nodes[0].ID}); err != nil || len(rows) != 1 || rows[0].IntConnector != nil {
		t.Fatalf("GetByNodeIDs: err=%v rows=%v", err, rows)
	}

	if _, err := pinRepo.Create(dbc, []*types.Pinout{
		{ConnectionID: conns[0].ID, NetID: net.ID, Pin: "1"},
		{ConnectionID: conns[0].ID, NetID: net.ID, Pin: "2"},
	}); err != nil {
		t.Fatalf("Create pinouts: %v", err)
	}
	if rows, err := pinRepo.GetByConnectionIDs(dbc, []int64{conns[0].ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByConnectionIDs: err=%v len=%d", err, len(rows))
	}
	if cnt, err := pinRepo.Count(dbc); err != nil || cnt != 2 {
		t.Fatalf("Count: err=%v n=%d", err, cnt)
	}
}

func TestConnectionRepo_UnknownBusRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewConnectionRepo(db, testutil.Logger(t))
	n := testutil.SeedNode(t, ctx, tx, "ECU1")

	if _, err := repo.Create(dbc, []*types.Connection{{NodeID: n.ID, BusID: 9999}}); err == nil {
		t.Fatalf("expected foreign key violation for unknown bus")
	}
}

func TestCascadeDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	netRepo := NewNetRepo(db, log)
	connRepo := NewConnectionRepo(db, log)
	pinRepo := NewPinoutRepo(db, log)

	b1 := testutil.SeedBus(t, ctx, tx, "B1")
	b2 := testutil.SeedBus(t, ctx, tx, "B2")
	n1 := testutil.SeedNet(t, ctx, tx, b1.ID, "X")
	n2 := testutil.SeedNet(t, ctx, tx, b2.ID, "Y")
	node := testutil.SeedNode(t, ctx, tx, "ECU1")
	c1 := testutil.SeedConnection(t, ctx, tx, node.ID, b1.ID)
	c2 := testutil.SeedConnection(t, ctx, tx, node.ID, b2.ID)
	testutil.SeedPinout(t, ctx, tx, c1.ID, n1.ID, "1")
	testutil.SeedPinout(t, ctx, tx, c2.ID, n2.ID, "1")

	if err := tx.WithContext(ctx).Delete(&types.Bus{}, b1.ID).Error; err != nil {
		t.Fatalf("delete bus: %v", err)
	}
	if rows, err := netRepo.GetByBusIDs(dbc, []int64{b1.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("nets of deleted bus: err=%v len=%d", err, len(rows))
	}
	if rows, err := connRepo.GetByNodeIDs(dbc, []int64{node.ID}); err != nil || len(rows) != 1 || rows[0].ID != c2.ID {
		t.Fatalf("connections after bus delete: err=%v rows=%v", err, rows)
	}
	if cnt, err := pinRepo.Count(dbc); err != nil || cnt != 1 {
		t.Fatalf("pinouts after bus delete: err=%v n=%d", err, cnt)
	}

	if err := tx.WithContext(ctx).Delete(&types.Node{}, node.ID).Error; err != nil {
		t.Fatalf("delete node: %v", err)
	}
	if cnt, err := connRepo.Count(dbc); err != nil || cnt != 0 {
		t.Fatalf("connections after node delete: err=%v n=%d", err, cnt)
	}
	if cnt, err := pinRepo.Count(dbc); err != nil || cnt != 0 {
		t.Fatalf("pinouts after node delete: err=%v n=%d", err, cnt)
	}
	if cnt, err := netRepo.Count(dbc); err != nil || cnt != 1 {
		t.Fatalf("nets after node delete: err=%v n=%d", err, cnt)
	}
}

package console

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/form"
)

const (
	maintenanceByVehicle = `SELECT MENTENANTA_ID FROM MENTENANTA WHERE VEHICUL_ID = ?`
	deleteVehicle        = `DELETE FROM VEHICUL WHERE VEHICUL_ID = ?`
)

// CascadeOutcome records a parent delete and what happened to its maintenance rows.
type CascadeOutcome struct {
	VehicleID      int64 `json:"vehicle_id"`
	ChildrenBefore int   `json:"children_before"`
	Deleted        int64 `json:"deleted"`
	ChildrenAfter  int   `json:"children_after"`
}

// Confirmed reports whether the ON DELETE CASCADE removed every child row.
func (o CascadeOutcome) Confirmed() bool {
	return o.Deleted > 0 && o.ChildrenAfter == 0
}

// CascadeOverview returns the vehicles and maintenance rows a cascade delete acts on.
func (s *Service) CascadeOverview(ctx context.Context) (vehicles, maintenance *common.QueryResult, err error) {
	if vehicles, err = s.query(ctx, `SELECT * FROM VEHICUL ORDER BY VEHICUL_ID`); err != nil {
		return nil, nil, err
	}
	if maintenance, err = s.query(ctx, `SELECT * FROM MENTENANTA ORDER BY MENTENANTA_ID`); err != nil {
		return nil, nil, err
	}
	return vehicles, maintenance, nil
}

func (s *Service) countMaintenance(ctx context.Context, vehicleID int64) (int, error) {
	result, err := s.query(ctx, maintenanceByVehicle, vehicleID)
	if err != nil {
		return 0, err
	}
	return len(result.Rows), nil
}

// CascadeDelete deletes one vehicle and then checks that no maintenance row
// still references it.
func (s *Service) CascadeDelete(ctx context.Context, id any) (*CascadeOutcome, error) {
	vehicleID, err := form.CoerceKey(id)
	if err != nil {
		return nil, err
	}

	out := &CascadeOutcome{VehicleID: vehicleID}
	if out.ChildrenBefore, err = s.countMaintenance(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("failed to count maintenance rows: %w", err)
	}

	if out.Deleted, err = s.exec(ctx, deleteVehicle, vehicleID); err != nil {
		return nil, fmt.Errorf("failed to delete vehicle %d: %w", vehicleID, err)
	}
	if out.Deleted == 0 {
		return out, ErrNoData
	}

	if out.ChildrenAfter, err = s.countMaintenance(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("failed to re-check maintenance rows: %w", err)
	}

	log := s.log.With("vehicle", vehicleID, "children_before", out.ChildrenBefore)
	if out.Confirmed() {
		log.Info("cascade delete confirmed")
	} else {
		log.Warn("maintenance rows survived parent delete", "children_after", out.ChildrenAfter)
	}
	return out, nil
}

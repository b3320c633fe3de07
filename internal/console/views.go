package console

import (
	"context"
	"fmt"
	"math"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/form"
)

const (
	FleetView      = "V_FLOTA_TIRURI"
	CostReportView = "V_RAPORT_COSTURI_VEHICUL"
)

// Fleet reads the updatable truck fleet view.
func (s *Service) Fleet(ctx context.Context) (*common.QueryResult, error) {
	return s.query(ctx, `SELECT * FROM `+FleetView+` ORDER BY VEHICUL_ID`)
}

// VehicleCosts reads the read-only per-vehicle cost view.
func (s *Service) VehicleCosts(ctx context.Context) (*common.QueryResult, error) {
	return s.query(ctx, `SELECT * FROM `+CostReportView+` ORDER BY VEHICUL_ID`)
}

// UpdateFleetWeight writes GREUTATE_MAXIMA through the fleet view. Engines that
// route the update through a trigger may report zero affected rows, so the
// target is located first.
func (s *Service) UpdateFleetWeight(ctx context.Context, id any, weight float64) error {
	vehicleID, err := form.CoerceKey(id)
	if err != nil {
		return err
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("%w: weight %v", form.ErrInvalidValue, weight)
	}

	found, err := s.query(ctx, `SELECT VEHICUL_ID FROM `+FleetView+` WHERE VEHICUL_ID = ?`, vehicleID)
	if err != nil {
		return err
	}
	if found.Empty() {
		return ErrNoData
	}

	if _, err := s.exec(ctx, `UPDATE `+FleetView+` SET GREUTATE_MAXIMA = ? WHERE VEHICUL_ID = ?`, weight, vehicleID); err != nil {
		return fmt.Errorf("failed to update %s: %w", FleetView, err)
	}
	s.log.Info("fleet weight updated", "vehicle", vehicleID, "weight", weight)
	return nil
}

package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFleetView(t *testing.T) {
	svc, _ := newTestService(t, defaultReports)
	ctx := context.Background()

	fleet, err := svc.Fleet(ctx)
	require.NoError(t, err)
	require.Len(t, fleet.Rows, 2)
	assert.EqualValues(t, 2, fleet.Rows[0]["VEHICUL_ID"])

	require.NoError(t, svc.UpdateFleetWeight(ctx, 2, 42500))

	fleet, err = svc.Fleet(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 42500, fleet.Rows[0]["GREUTATE_MAXIMA"])
}

func TestFleetView_UpdateRejects(t *testing.T) {
	svc, _ := newTestService(t, defaultReports)
	ctx := context.Background()

	// vehicle 1 is a coach, not part of the truck fleet
	assert.ErrorIs(t, svc.UpdateFleetWeight(ctx, 1, 1000), ErrNoData)
	assert.Error(t, svc.UpdateFleetWeight(ctx, 2, -5))
}

func TestVehicleCosts(t *testing.T) {
	svc, _ := newTestService(t, defaultReports)

	costs, err := svc.VehicleCosts(context.Background())
	require.NoError(t, err)
	require.Len(t, costs.Rows, 5)
	assert.EqualValues(t, 2, costs.Rows[0]["NR_MENTENANTE"])
	assert.EqualValues(t, 1480, costs.Rows[0]["COST_MENTENANTA"])
	assert.EqualValues(t, 0, costs.Rows[4]["NR_MENTENANTE"])
}

func TestBootstrap(t *testing.T) {
	svc, _ := newTestService(t, defaultReports)

	assert.ErrorIs(t, svc.Bootstrap(context.Background()), ErrAlreadyInitialized)

	_, err := BootstrapScript("oracle")
	assert.Error(t, err)
	script, err := BootstrapScript("postgresql")
	require.NoError(t, err)
	assert.Contains(t, script, "ON DELETE CASCADE")
}

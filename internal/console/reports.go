package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/config"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
)

// Report is a fixed query whose parameters come from configuration.
type Report struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	query string
	args  func(config.Reports) []any
}

const maintenanceQuery = `SELECT M.TIP_MENTENANTA, M.DESCRIERE, M.COST, V.MODEL, V.MARCA, V.NR_KILOMETRI,
       CASE WHEN A.VEHICUL_ID IS NOT NULL THEN 'Autocar'
            WHEN T.VEHICUL_ID IS NOT NULL THEN 'TIR'
       END AS TIP_VEHICUL
FROM MENTENANTA M
JOIN VEHICUL V ON M.VEHICUL_ID = V.VEHICUL_ID
LEFT JOIN AUTOCAR A ON V.VEHICUL_ID = A.VEHICUL_ID
LEFT JOIN TIR T ON V.VEHICUL_ID = T.VEHICUL_ID
WHERE V.MARCA = ? AND M.COST >= ?
ORDER BY M.COST DESC`

const trafficQuery = `SELECT C.LOC_PLECARE, SUM(C.COST_TOTAL) AS COST_TOTAL, SUM(TP.NR_PASAGERI) AS NR_PASAGERI
FROM CURSA C
JOIN TRANSPORT_PERSOANE TP ON C.CURSA_ID = TP.CURSA_ID
GROUP BY C.LOC_PLECARE
HAVING SUM(TP.NR_PASAGERI) > ?
ORDER BY C.LOC_PLECARE`

var reports = []Report{
	{
		Name:  "maintenance",
		Title: "Costly maintenance by brand",
		query: maintenanceQuery,
		args:  func(r config.Reports) []any { return []any{r.Brand, r.MinCost} },
	},
	{
		Name:  "traffic",
		Title: "Passenger traffic by departure",
		query: trafficQuery,
		args:  func(r config.Reports) []any { return []any{r.MinPassengers} },
	},
}

// Reports lists the available reports.
func Reports() []Report {
	out := make([]Report, len(reports))
	copy(out, reports)
	return out
}

func findReport(name string) (Report, bool) {
	for _, r := range reports {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Report{}, false
}

type ReportResult struct {
	Report Report              `json:"report"`
	Params []any               `json:"params"`
	Result *common.QueryResult `json:"result"`
}

// RunReport executes the named report with the configured thresholds. An
// empty result is returned as ErrNoData alongside the (empty) result.
func (s *Service) RunReport(ctx context.Context, name string) (*ReportResult, error) {
	r, ok := findReport(name)
	if !ok {
		return nil, fmt.Errorf("unknown report %q", name)
	}

	params := r.args(s.reports)
	result, err := s.query(ctx, r.query, params...)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", r.Name, err)
	}

	out := &ReportResult{Report: r, Params: params, Result: result}
	if result.Empty() {
		return out, ErrNoData
	}
	return out, nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/farmhaul/dispatch/internal/domain"
)

// HistoryRepository persists one row per planned working day (weekend
// steps produce no DailyLog and so no row) so /history can be served
// without recomputing the horizon, and so reset() can truncate it.
type HistoryRepository struct {
	db DBPool
}

// NewHistoryRepository creates a HistoryRepository.
func NewHistoryRepository(db DBPool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append records one day's outcome. Trips are stored as JSON rather
// than normalised into their own table: the core never queries past
// trips structurally, only replays them as parallel KPI arrays.
func (r *HistoryRepository) Append(ctx context.Context, log domain.DailyLog) error {
	tripsJSON, err := json.Marshal(log.Trips)
	if err != nil {
		return fmt.Errorf("history: marshal trips: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO daily_logs (day_index, trips, total_pigs, daily_profit, daily_revenue, daily_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (day_index) DO UPDATE SET
			trips = EXCLUDED.trips,
			total_pigs = EXCLUDED.total_pigs,
			daily_profit = EXCLUDED.daily_profit,
			daily_revenue = EXCLUDED.daily_revenue,
			daily_cost = EXCLUDED.daily_cost
	`, log.DayIndex, tripsJSON, log.TotalPigs, log.DailyProfit, log.DailyRevenue, log.DailyCost)
	if err != nil {
		return fmt.Errorf("history: append day %d: %w", log.DayIndex, err)
	}
	return nil
}

// KPISeries is the parallel-array shape the history endpoint returns.
type KPISeries struct {
	Labels        []int
	Profit        []float64
	Revenue       []float64
	Cost          []float64
	PigsDelivered []int
}

// Series returns every recorded day, ordered by day index, as parallel
// arrays.
func (r *HistoryRepository) Series(ctx context.Context) (KPISeries, error) {
	rows, err := r.db.Query(ctx, `
		SELECT day_index, total_pigs, daily_profit, daily_revenue, daily_cost
		FROM daily_logs ORDER BY day_index
	`)
	if err != nil {
		return KPISeries{}, fmt.Errorf("history: series: %w", err)
	}
	defer rows.Close()

	var s KPISeries
	for rows.Next() {
		var day, pigs int
		var profit, revenue, cost float64
		if err := rows.Scan(&day, &pigs, &profit, &revenue, &cost); err != nil {
			return KPISeries{}, fmt.Errorf("history: scan: %w", err)
		}
		s.Labels = append(s.Labels, day)
		s.PigsDelivered = append(s.PigsDelivered, pigs)
		s.Profit = append(s.Profit, profit)
		s.Revenue = append(s.Revenue, revenue)
		s.Cost = append(s.Cost, cost)
	}
	return s, rows.Err()
}

// Truncate removes every recorded day, called by reset().
func (r *HistoryRepository) Truncate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM daily_logs`)
	if err != nil {
		return fmt.Errorf("history: truncate: %w", err)
	}
	return nil
}

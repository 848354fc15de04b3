package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signalchart/internal/feature/chart/domain/entity"
)

func TestComputeOverlay_LongWithSingleTarget(t *testing.T) {
	t.Parallel()

	sig := &entity.Signal{
		Direction: entity.Long,
		Entry:     100,
		StopLoss:  90,
		Targets:   []entity.Target{{Seq: 1, Price: 110}},
	}

	geo := ComputeOverlay(sig, 104.5)

	assert.Equal(t, []entity.Zone{
		{Low: 90, High: 100, Role: entity.RoleLoss},
		{Low: 100, High: 110, Role: entity.RoleProfit},
	}, geo.Zones)

	assert.Equal(t, []entity.Level{
		{Price: 90, Role: entity.RoleStop, Label: "SL: 90.00"},
		{Price: 100, Role: entity.RoleEntry, Label: "Entry: 100.00"},
		{Price: 110, Role: entity.RoleTarget, Label: "TP1: 110.00"},
		{Price: 104.5, Role: entity.RoleLast, Label: "Last: 104.50"},
	}, geo.Levels)
}

func TestComputeOverlay_DegenerateRiskZone(t *testing.T) {
	t.Parallel()

	// entry == stop-loss must not raise and must not emit a zero-height zone.
	sig := &entity.Signal{Direction: entity.Short, Entry: 100, StopLoss: 100}

	geo := ComputeOverlay(sig, 99)

	assert.Empty(t, geo.Zones)
	assert.Len(t, geo.Levels, 3) // SL, Entry, Last
}

func TestComputeOverlay_ShortRewardZone(t *testing.T) {
	t.Parallel()

	sig := &entity.Signal{
		Direction: entity.Short,
		Entry:     100,
		StopLoss:  105,
		Targets:   []entity.Target{{Seq: 1, Price: 80}, {Seq: 2, Price: 85}},
	}

	geo := ComputeOverlay(sig, 98)

	// Reward zone spans lowest target to entry for SHORT.
	assert.Contains(t, geo.Zones, entity.Zone{Low: 80, High: 100, Role: entity.RoleProfit})

	labels := make([]string, 0, len(geo.Levels))
	for _, lv := range geo.Levels {
		labels = append(labels, lv.Label)
	}
	assert.Contains(t, labels, "TP1: 80.00")
	assert.Contains(t, labels, "TP2: 85.00")
}

func TestComputeOverlay_SparseTargetsKeepNumbering(t *testing.T) {
	t.Parallel()

	// tp1 and tp3 supplied, tp2 omitted: exactly one line per supplied
	// target, numbered as the caller numbered them.
	sig := &entity.Signal{
		Direction: entity.Long,
		Entry:     100,
		StopLoss:  95,
		Targets:   []entity.Target{{Seq: 1, Price: 105}, {Seq: 3, Price: 115}},
	}

	geo := ComputeOverlay(sig, 101)

	var targetLabels []string
	for _, lv := range geo.Levels {
		if lv.Role == entity.RoleTarget {
			targetLabels = append(targetLabels, lv.Label)
		}
	}
	assert.Equal(t, []string{"TP1: 105.00", "TP3: 115.00"}, targetLabels)
	assert.Contains(t, geo.Zones, entity.Zone{Low: 100, High: 115, Role: entity.RoleProfit})
}

func TestComputeOverlay_NoSignal(t *testing.T) {
	t.Parallel()

	geo := ComputeOverlay(nil, 42.129)

	assert.Empty(t, geo.Zones)
	assert.Equal(t, []entity.Level{
		{Price: 42.129, Role: entity.RoleLast, Label: "Last: 42.13"},
	}, geo.Levels)
}

func TestComputeOverlay_TargetsOnWrongSideOfEntry(t *testing.T) {
	t.Parallel()

	// Nonsensical levels are a caller error drawn as given, never a
	// computation error: SHORT with every target above entry still
	// yields an ordered zone.
	sig := &entity.Signal{
		Direction: entity.Short,
		Entry:     100,
		StopLoss:  110,
		Targets:   []entity.Target{{Seq: 1, Price: 120}},
	}

	geo := ComputeOverlay(sig, 100)

	assert.Contains(t, geo.Zones, entity.Zone{Low: 100, High: 120, Role: entity.RoleProfit})
}

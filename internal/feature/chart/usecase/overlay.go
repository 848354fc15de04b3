package usecase

import (
	"fmt"
	"math"

	"signalchart/internal/feature/chart/domain/entity"
)

// ComputeOverlay derives the shaded zones and horizontal reference lines
// for a signal against the most recent close. It is pure and total:
// any combination of real-valued inputs produces a geometry without
// error, even when the levels are nonsensical relative to the fetched
// price range.
//
// The risk zone spans [min(entry, stop), max(entry, stop)] regardless of
// direction. The reward zone is direction-dependent: entry up to the
// highest target for LONG, lowest target up to entry for SHORT.
// Zero-height zones are suppressed rather than emitted.
func ComputeOverlay(sig *entity.Signal, lastPrice float64) entity.OverlayGeometry {
	var geo entity.OverlayGeometry

	if sig != nil {
		lo := math.Min(sig.Entry, sig.StopLoss)
		hi := math.Max(sig.Entry, sig.StopLoss)
		if lo != hi {
			geo.Zones = append(geo.Zones, entity.Zone{Low: lo, High: hi, Role: entity.RoleLoss})
		}

		if len(sig.Targets) > 0 {
			minT, maxT := sig.Targets[0].Price, sig.Targets[0].Price
			for _, t := range sig.Targets[1:] {
				minT = math.Min(minT, t.Price)
				maxT = math.Max(maxT, t.Price)
			}
			var zlo, zhi float64
			if sig.Direction == entity.Short {
				zlo, zhi = minT, sig.Entry
			} else {
				zlo, zhi = sig.Entry, maxT
			}
			// Inverted bounds happen when every target sits on the wrong
			// side of entry; still drawn as given, just reordered.
			if zlo > zhi {
				zlo, zhi = zhi, zlo
			}
			if zlo != zhi {
				geo.Zones = append(geo.Zones, entity.Zone{Low: zlo, High: zhi, Role: entity.RoleProfit})
			}
		}

		geo.Levels = append(geo.Levels,
			entity.Level{Price: sig.StopLoss, Role: entity.RoleStop, Label: fmt.Sprintf("SL: %.2f", sig.StopLoss)},
			entity.Level{Price: sig.Entry, Role: entity.RoleEntry, Label: fmt.Sprintf("Entry: %.2f", sig.Entry)},
		)
		for _, t := range sig.Targets {
			geo.Levels = append(geo.Levels,
				entity.Level{Price: t.Price, Role: entity.RoleTarget, Label: fmt.Sprintf("TP%d: %.2f", t.Seq, t.Price)})
		}
	}

	geo.Levels = append(geo.Levels,
		entity.Level{Price: lastPrice, Role: entity.RoleLast, Label: fmt.Sprintf("Last: %.2f", lastPrice)})

	return geo
}

package timeline

import (
	"fmt"
	"strings"

	"splice/internal/services"
)

// Validate checks structural rules the playback engine depends on: positive
// durations, known media types, non-empty identifiers, no overlapping items
// within a track, and duplicate-free track orders.
func (d Document) Validate() error {
	seenOrders := make(map[int]string, len(d.Tracks))
	seenItems := make(map[string]struct{})
	for _, track := range d.Tracks {
		if strings.TrimSpace(track.ID) == "" {
			return services.Wrap(services.ErrValidation, "timeline", "validate", "track without id", nil)
		}
		if prior, dup := seenOrders[track.Order]; dup {
			return services.Wrap(services.ErrValidation, "timeline", "validate",
				fmt.Sprintf("tracks %s and %s share order %d", prior, track.ID, track.Order), nil)
		}
		seenOrders[track.Order] = track.ID

		for i, item := range track.Items {
			if strings.TrimSpace(item.ID) == "" {
				return services.Wrap(services.ErrValidation, "timeline", "validate",
					fmt.Sprintf("track %s has an item without id", track.ID), nil)
			}
			if _, dup := seenItems[item.ID]; dup {
				return services.Wrap(services.ErrValidation, "timeline", "validate",
					fmt.Sprintf("duplicate item id %s", item.ID), nil)
			}
			seenItems[item.ID] = struct{}{}
			if !item.Type.Valid() {
				return services.Wrap(services.ErrValidation, "timeline", "validate",
					fmt.Sprintf("item %s has unknown type %q", item.ID, item.Type), nil)
			}
			if item.Duration <= 0 {
				return services.Wrap(services.ErrValidation, "timeline", "validate",
					fmt.Sprintf("item %s has non-positive duration", item.ID), nil)
			}
			if item.StartTime < 0 {
				return services.Wrap(services.ErrValidation, "timeline", "validate",
					fmt.Sprintf("item %s starts before zero", item.ID), nil)
			}
			for _, other := range track.Items[i+1:] {
				if item.StartTime < other.EndTime() && other.StartTime < item.EndTime() {
					return services.Wrap(services.ErrValidation, "timeline", "validate",
						fmt.Sprintf("items %s and %s overlap on track %s", item.ID, other.ID, track.ID), nil)
				}
			}
		}
	}
	return nil
}

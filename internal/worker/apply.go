package worker

import (
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// Apply performs req against tr, resolving names the way a person or an
// auto-tracker would type them.
func Apply(tr *tracker.Tracker, req *queue.Request) ([]world.Change, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Type {
	case queue.RequestTypeTrack, queue.RequestTypeUntrack:
		item, err := items.ParseItem(req.Value)
		if err != nil {
			return nil, err
		}
		if req.Type == queue.RequestTypeTrack {
			return tr.Track(item)
		}
		return tr.Untrack(item)

	case queue.RequestTypeDefeatBoss, queue.RequestTypeReviveBoss:
		boss, err := items.ParseBoss(req.Value)
		if err != nil {
			return nil, err
		}
		return tr.SetBossDefeated(boss, req.Type == queue.RequestTypeDefeatBoss)

	case queue.RequestTypeObtainReward, queue.RequestTypeLoseReward:
		reward := items.NoReward
		if req.Value != "" {
			r, err := items.ParseReward(req.Value)
			if err != nil {
				return nil, err
			}
			reward = r
		}
		return tr.SetRewardObtained(req.Target, reward, req.Type == queue.RequestTypeObtainReward)

	case queue.RequestTypeClear:
		return tr.ClearLocation(req.Target)

	case queue.RequestTypeUnclear:
		return tr.UnclearLocation(req.Target)

	case queue.RequestTypeMark:
		item, err := items.ParseItem(req.Value)
		if err != nil {
			return nil, err
		}
		return tr.MarkLocation(req.Target, item)

	case queue.RequestTypeSetItem:
		item, err := items.ParseItem(req.Value)
		if err != nil {
			return nil, err
		}
		return tr.SetLocationItem(req.Target, item)

	case queue.RequestTypeMedallion:
		item, err := items.ParseItem(req.Value)
		if err != nil {
			return nil, err
		}
		return tr.SetMedallion(req.Target, item)
	}
	return nil, fmt.Errorf("unknown request type: %s", req.Type)
}

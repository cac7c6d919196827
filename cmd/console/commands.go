package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

const helpText = `Commands:
  track ITEM / untrack ITEM       e.g. track progressive glove
  defeat BOSS / revive BOSS       e.g. defeat Kraid
  reward REGION [= REWARD]        e.g. reward Palace of Darkness = Crystal
  lose REGION                     forget a region's reward
  clear LOCATION / unclear LOCATION
  mark LOCATION = ITEM            note an item seen at a location
  item LOCATION = ITEM            set the item a location holds
  medallion REGION = MEDALLION    e.g. medallion Misery Mire = Ether
  missing LOCATION                what a location still needs
  missing boss BOSS / missing reward REGION
  filter [ACCESSIBILITY]          e.g. filter available; no argument clears
  region [REGION]                 show one region; no argument clears
  help                            show this help
  Ctrl+C                          quit`

// command is one parsed console line. Exactly one field is set, apart from
// clearing filters which sets setFilter or setRegion with an empty value.
type command struct {
	action    *handlers.ActionRequest
	missing   *missingQuery
	setFilter *string
	setRegion *string
	help      bool
}

type missingQuery struct {
	kind string
	name string
}

var singleArg = map[string]queuePkg.RequestType{
	"track":   queuePkg.RequestTypeTrack,
	"untrack": queuePkg.RequestTypeUntrack,
	"defeat":  queuePkg.RequestTypeDefeatBoss,
	"revive":  queuePkg.RequestTypeReviveBoss,
}

var targetOnly = map[string]queuePkg.RequestType{
	"clear":   queuePkg.RequestTypeClear,
	"unclear": queuePkg.RequestTypeUnclear,
	"lose":    queuePkg.RequestTypeLoseReward,
}

var assignments = map[string]queuePkg.RequestType{
	"mark":      queuePkg.RequestTypeMark,
	"item":      queuePkg.RequestTypeSetItem,
	"medallion": queuePkg.RequestTypeMedallion,
}

func parseCommand(input string) (command, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "/")
	verb, rest, _ := strings.Cut(input, " ")
	verb = strings.ToLower(verb)
	rest = strings.TrimSpace(rest)

	if typ, ok := singleArg[verb]; ok {
		if rest == "" {
			return command{}, fmt.Errorf("%s needs a name", verb)
		}
		return command{action: &handlers.ActionRequest{Type: typ, Value: rest}}, nil
	}
	if typ, ok := targetOnly[verb]; ok {
		if rest == "" {
			return command{}, fmt.Errorf("%s needs a name", verb)
		}
		return command{action: &handlers.ActionRequest{Type: typ, Target: rest}}, nil
	}
	if typ, ok := assignments[verb]; ok {
		target, value, ok := splitAssignment(rest)
		if !ok {
			return command{}, fmt.Errorf("usage: %s TARGET = VALUE", verb)
		}
		return command{action: &handlers.ActionRequest{Type: typ, Target: target, Value: value}}, nil
	}

	switch verb {
	case "reward":
		target, value, ok := splitAssignment(rest)
		if !ok {
			target, value = rest, ""
		}
		if target == "" {
			return command{}, errors.New("usage: reward REGION [= REWARD]")
		}
		return command{action: &handlers.ActionRequest{Type: queuePkg.RequestTypeObtainReward, Target: target, Value: value}}, nil

	case "missing":
		q := missingQuery{kind: "location", name: rest}
		if k, name, ok := strings.Cut(rest, " "); ok {
			switch strings.ToLower(k) {
			case "boss", "reward":
				q = missingQuery{kind: strings.ToLower(k), name: strings.TrimSpace(name)}
			}
		}
		if q.name == "" {
			return command{}, errors.New("usage: missing LOCATION | missing boss BOSS | missing reward REGION")
		}
		return command{missing: &q}, nil

	case "filter":
		if rest != "" {
			var a world.Accessibility
			if err := a.UnmarshalText([]byte(strings.ReplaceAll(rest, " ", "_"))); err != nil {
				return command{}, err
			}
			rest = a.String()
		}
		return command{setFilter: &rest}, nil

	case "region":
		return command{setRegion: &rest}, nil

	case "help", "?":
		return command{help: true}, nil

	case "":
		return command{}, errors.New("empty command")
	}
	return command{}, fmt.Errorf("unknown command %q, type help", verb)
}

// splitAssignment splits "left = right", trimming both sides.
func splitAssignment(s string) (string, string, bool) {
	left, right, ok := strings.Cut(s, "=")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !ok || left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

// Package save implements versioned JSON persistence (§6): enough of
// GameState to resume a game exactly, keyed by a save id so a frontend
// can list and choose among multiple save slots.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/ifcore/types"
)

// CurrentVersion is the save format version written by this build. A
// restore of a different version is rejected outright rather than
// guessed at.
const CurrentVersion = 1

// Data is the on-disk representation of a GameState: every field
// listed in §6's persisted-state list, and nothing derived (inventory,
// scope, lit-ness are recomputed on load).
type Data struct {
	Version int       `json:"version"`
	SaveID  uuid.UUID `json:"save_id"`
	Title   string    `json:"title"`

	Items     map[string]ItemData     `json:"items"`
	Locations map[string]LocationData `json:"locations"`
	Player    PlayerData              `json:"player"`

	GlobalFlags map[string]bool         `json:"global_flags"`
	GameValues  map[string]PropertyData `json:"game_values"`
	Pronouns    map[string]string       `json:"pronouns"`

	ActiveFuses   map[string]int  `json:"active_fuses"`
	ActiveDaemons map[string]bool `json:"active_daemons"`

	ChangeLogLength int `json:"change_log_length"`

	RNGSeed  uint64 `json:"rng_seed"`
	RNGCalls uint64 `json:"rng_calls"`
}

// ItemData is an item's persisted fields: identity is implicit (the
// map key), properties and parent are explicit.
type ItemData struct {
	Parent ParentData              `json:"parent"`
	Props  map[string]PropertyData `json:"props"`
}

type LocationData struct {
	Props map[string]PropertyData `json:"props"`
}

type PlayerData struct {
	Location    string         `json:"location"`
	Moves       int            `json:"moves"`
	Score       int            `json:"score"`
	Capacity    int            `json:"capacity"`
	Sheet       map[string]int `json:"sheet"`
	DisplayMode string         `json:"display_mode"`
}

// ParentData mirrors types.Parent in a JSON-friendly shape.
type ParentData struct {
	Kind     string `json:"kind"`
	Location string `json:"location,omitempty"`
	Item     string `json:"item,omitempty"`
}

// PropertyData mirrors types.Value: exactly one field is populated,
// named by Kind.
type PropertyData struct {
	Kind      string   `json:"kind"`
	Bool      bool     `json:"bool,omitempty"`
	Int       int      `json:"int,omitempty"`
	Str       string   `json:"str,omitempty"`
	StrSet    []string `json:"str_set,omitempty"`
	ItemID    string   `json:"item_id,omitempty"`
	ItemIDSet []string `json:"item_id_set,omitempty"`
	LocID     string   `json:"loc_id,omitempty"`
}

// FromGameState snapshots a live GameState into a Data ready to
// marshal. Title is supplied by the caller (the blueprint's Title)
// since GameState itself doesn't carry it.
func FromGameState(s *types.GameState, title string) Data {
	d := Data{
		Version:         CurrentVersion,
		SaveID:          uuid.New(),
		Title:           title,
		Items:           map[string]ItemData{},
		Locations:       map[string]LocationData{},
		GlobalFlags:     map[string]bool{},
		GameValues:      map[string]PropertyData{},
		Pronouns:        map[string]string{},
		ActiveFuses:     map[string]int{},
		ActiveDaemons:   map[string]bool{},
		ChangeLogLength: len(s.ChangeLog),
		RNGSeed:         s.RNGSeed,
		RNGCalls:        s.RNGCalls,
	}
	for id, it := range s.Items {
		d.Items[string(id)] = ItemData{Parent: parentToData(it.Parent), Props: propsToData(it.Props)}
	}
	for id, loc := range s.Locations {
		d.Locations[string(id)] = LocationData{Props: propsToData(loc.Props)}
	}
	d.Player = PlayerData{
		Location:    string(s.Player.Location),
		Moves:       s.Player.Moves,
		Score:       s.Player.Score,
		Capacity:    s.Player.Capacity,
		Sheet:       copyIntMap(s.Player.Sheet),
		DisplayMode: s.Player.DisplayMode,
	}
	for k, v := range s.GlobalFlags {
		d.GlobalFlags[k] = v.Bool()
	}
	for k, v := range s.GameValues {
		d.GameValues[k] = valueToData(v)
	}
	for k, v := range s.Pronouns {
		d.Pronouns[k] = string(v)
	}
	for k, v := range s.ActiveFuses {
		d.ActiveFuses[string(k)] = v
	}
	for k, v := range s.ActiveDaemons {
		d.ActiveDaemons[string(k)] = v
	}
	return d
}

// Marshal renders Data as indented JSON, the format written to disk.
func Marshal(d Data) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses save JSON and rejects anything not written by
// CurrentVersion outright, per §6's "reject, don't guess" contract.
func Unmarshal(raw []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("save: malformed JSON: %w", err)
	}
	if d.Version != CurrentVersion {
		return Data{}, fmt.Errorf("save: version %d unsupported (this build writes version %d)", d.Version, CurrentVersion)
	}
	return d, nil
}

// ApplyTo overwrites a live GameState's mutable fields from Data. The
// item/location identity sets must already match (a restore is only
// valid against the same blueprint it was saved from). An item or
// location id the live state lacks is never fabricated: ApplyTo returns
// an error at the first one, and entities already overwritten before
// it stay overwritten.
func ApplyTo(s *types.GameState, d Data) error {
	for id, data := range d.Items {
		it, ok := s.Items[types.NewItemID(id)]
		if !ok {
			return fmt.Errorf("save: unknown item %q in save data", id)
		}
		it.Parent = dataToParent(data.Parent)
		it.Props = dataToProps(data.Props)
	}
	for id, data := range d.Locations {
		loc, ok := s.Locations[types.NewLocationID(id)]
		if !ok {
			return fmt.Errorf("save: unknown location %q in save data", id)
		}
		loc.Props = dataToProps(data.Props)
	}
	s.Player = types.Player{
		Location:    types.NewLocationID(d.Player.Location),
		Moves:       d.Player.Moves,
		Score:       d.Player.Score,
		Capacity:    d.Player.Capacity,
		Sheet:       copyIntMap(d.Player.Sheet),
		DisplayMode: d.Player.DisplayMode,
	}
	s.GlobalFlags = map[string]types.Value{}
	for k, v := range d.GlobalFlags {
		s.GlobalFlags[k] = types.BoolValue(v)
	}
	s.GameValues = map[string]types.Value{}
	for k, v := range d.GameValues {
		s.GameValues[k] = dataToValue(v)
	}
	s.Pronouns = map[string]types.ItemID{}
	for k, v := range d.Pronouns {
		s.Pronouns[k] = types.NewItemID(v)
	}
	s.ActiveFuses = map[types.FuseID]int{}
	for k, v := range d.ActiveFuses {
		s.ActiveFuses[types.NewFuseID(k)] = v
	}
	s.ActiveDaemons = map[types.DaemonID]bool{}
	for k, v := range d.ActiveDaemons {
		s.ActiveDaemons[types.NewDaemonID(k)] = v
	}
	s.RNGSeed = d.RNGSeed
	s.RNGCalls = d.RNGCalls
	s.ChangeLog = nil
	return nil
}

func parentToData(p types.Parent) ParentData {
	switch p.Kind {
	case types.ParentLocation:
		return ParentData{Kind: "location", Location: string(p.Location)}
	case types.ParentItem:
		return ParentData{Kind: "item", Item: string(p.Item)}
	case types.ParentPlayer:
		return ParentData{Kind: "player"}
	default:
		return ParentData{Kind: "nowhere"}
	}
}

func dataToParent(d ParentData) types.Parent {
	switch d.Kind {
	case "location":
		return types.LocationParent(types.NewLocationID(d.Location))
	case "item":
		return types.ItemParent(types.NewItemID(d.Item))
	case "player":
		return types.PlayerParent()
	default:
		return types.NowhereParent()
	}
}

func propsToData(props map[types.PropertyID]types.Value) map[string]PropertyData {
	out := make(map[string]PropertyData, len(props))
	for k, v := range props {
		out[string(k)] = valueToData(v)
	}
	return out
}

func dataToProps(data map[string]PropertyData) map[types.PropertyID]types.Value {
	out := make(map[types.PropertyID]types.Value, len(data))
	for k, v := range data {
		out[types.NewPropertyID(k)] = dataToValue(v)
	}
	return out
}

func valueToData(v types.Value) PropertyData {
	switch v.Kind() {
	case types.KindBool:
		return PropertyData{Kind: "bool", Bool: v.Bool()}
	case types.KindInt:
		return PropertyData{Kind: "int", Int: v.Int()}
	case types.KindString:
		return PropertyData{Kind: "string", Str: v.String()}
	case types.KindStringSet:
		return PropertyData{Kind: "string_set", StrSet: v.StringSet()}
	case types.KindItemID:
		return PropertyData{Kind: "item_id", ItemID: string(v.ItemID())}
	case types.KindItemIDSet:
		ids := v.ItemIDSet()
		set := make([]string, len(ids))
		for i, id := range ids {
			set[i] = string(id)
		}
		return PropertyData{Kind: "item_id_set", ItemIDSet: set}
	case types.KindLocationID:
		return PropertyData{Kind: "location_id", LocID: string(v.LocationID())}
	default:
		return PropertyData{Kind: "undefined"}
	}
}

func dataToValue(d PropertyData) types.Value {
	switch d.Kind {
	case "bool":
		return types.BoolValue(d.Bool)
	case "int":
		return types.IntValue(d.Int)
	case "string":
		return types.StringValue(d.Str)
	case "string_set":
		return types.StringSetValue(d.StrSet...)
	case "item_id":
		return types.ItemIDValue(types.NewItemID(d.ItemID))
	case "item_id_set":
		ids := make([]types.ItemID, len(d.ItemIDSet))
		for i, s := range d.ItemIDSet {
			ids[i] = types.NewItemID(s)
		}
		return types.ItemIDSetValue(ids...)
	case "location_id":
		return types.LocationIDValue(types.NewLocationID(d.LocID))
	default:
		return types.Value{}
	}
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

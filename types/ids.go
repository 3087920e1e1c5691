// Package types defines the shared data structures of the turn engine:
// identifiers, the tagged Value union, the world model, commands,
// state changes, action results, the time system's records, and the
// game blueprint. This package contains only type definitions and the
// small amount of logic (equality, normalization) that must live next
// to the data to keep it consistent everywhere it is used.
package types

import "strings"

// normalizeID lower-cases and trims an identifier so that equality,
// ordering, and hashing all agree, per the case-insensitive identifier
// contract.
func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ItemID identifies an item. Equality is case-insensitive lexicographic.
type ItemID string

// NewItemID normalizes a raw string into an ItemID.
func NewItemID(s string) ItemID { return ItemID(normalizeID(s)) }

// IsZero reports whether the id is empty.
func (id ItemID) IsZero() bool { return id == "" }

// LocationID identifies a location.
type LocationID string

func NewLocationID(s string) LocationID { return LocationID(normalizeID(s)) }

func (id LocationID) IsZero() bool { return id == "" }

// VerbID identifies a verb in the vocabulary.
type VerbID string

func NewVerbID(s string) VerbID { return VerbID(normalizeID(s)) }

func (id VerbID) IsZero() bool { return id == "" }

// FuseID identifies a one-shot countdown routine.
type FuseID string

func NewFuseID(s string) FuseID { return FuseID(normalizeID(s)) }

func (id FuseID) IsZero() bool { return id == "" }

// DaemonID identifies a periodic background routine.
type DaemonID string

func NewDaemonID(s string) DaemonID { return DaemonID(normalizeID(s)) }

func (id DaemonID) IsZero() bool { return id == "" }

// GlobalID identifies a global flag or counter.
type GlobalID string

func NewGlobalID(s string) GlobalID { return GlobalID(normalizeID(s)) }

// PropertyID identifies a property on an item, location, or the player.
type PropertyID string

func NewPropertyID(s string) PropertyID { return PropertyID(normalizeID(s)) }

// Well-known property ids used by the default handlers and the world
// model. Blueprints may define arbitrary additional properties.
const (
	PropName               PropertyID = "name"
	PropAdjectives         PropertyID = "adjectives"
	PropSynonyms           PropertyID = "synonyms"
	PropShortDescription   PropertyID = "short_description"
	PropFirstDescription   PropertyID = "first_description"
	PropLongDescription    PropertyID = "long_description"
	PropReadText           PropertyID = "read_text"
	PropCapacity           PropertyID = "capacity"
	PropSize               PropertyID = "size"
	PropLockKey            PropertyID = "lock_key"
	PropContainer          PropertyID = "container"
	PropSurface            PropertyID = "surface"
	PropOpenable           PropertyID = "openable"
	PropOpen               PropertyID = "open"
	PropLockable           PropertyID = "lockable"
	PropLocked             PropertyID = "locked"
	PropTakable            PropertyID = "takable"
	PropWearable           PropertyID = "wearable"
	PropWorn               PropertyID = "worn"
	PropLightSource        PropertyID = "light_source"
	PropOn                 PropertyID = "on"
	PropTransparent        PropertyID = "transparent"
	PropScenery            PropertyID = "scenery"
	PropInvisible          PropertyID = "invisible"
	PropReadable           PropertyID = "readable"
	PropTouched            PropertyID = "touched"
	PropDoor               PropertyID = "door"
	PropPerson             PropertyID = "person"
	PropPlural             PropertyID = "plural"
	PropVowelStart         PropertyID = "vowel_start"
	PropSuppressArticle    PropertyID = "suppress_article"
	PropSuppressDesc       PropertyID = "suppress_description"
	PropBurning            PropertyID = "burning"
	PropFlammable          PropertyID = "flammable"
	PropEdible             PropertyID = "edible"
	PropDrinkable          PropertyID = "drinkable"
	PropClimbable          PropertyID = "climbable"

	PropInherentlyLit PropertyID = "inherently_lit"
	PropOutside       PropertyID = "outside"
	PropVisited       PropertyID = "visited"
	PropChanged       PropertyID = "changed"
	PropIsWater       PropertyID = "is_water"
	PropIsLand        PropertyID = "is_land"
	PropSacred        PropertyID = "sacred"
	PropOmitArticle   PropertyID = "omit_article"
	PropRuntimeLit    PropertyID = "is_lit"
)

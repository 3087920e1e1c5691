// Package loader compiles a game's content — locations, items, fuses,
// daemons, scripted handlers, and event handlers — from a directory of
// Lua files into a types.GameBlueprint, the one input the engine needs
// to start a game. Lua runs in a sandboxed VM (§6): only a handful of
// safe standard tables are open, dangerous globals are stripped, and
// scripts execute once at load time, never again during play.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/ifcore/types"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates every top-level declaration a game's Lua files
// produce, in file order, before compile() turns it into typed
// blueprint structs.
type collector struct {
	game          *lua.LTable
	locations     []rawLocation
	items         []rawItem
	fuses         []rawFuse
	daemons       []rawDaemon
	handlers      []rawHandlerDef
	eventHandlers []rawEventHandler
}

type rawLocation struct {
	id    string
	table *lua.LTable
}

type rawItem struct {
	id    string
	table *lua.LTable
}

type rawFuse struct {
	id    string
	table *lua.LTable
}

type rawDaemon struct {
	id    string
	table *lua.LTable
}

type rawHandlerDef struct {
	id    string
	table *lua.LTable
}

type rawEventHandler struct {
	eventType string
	table     *lua.LTable
}

// Load reads all .lua files from dir, executes them against the
// content DSL, compiles the result into a GameBlueprint, and validates
// its referential integrity. The Lua VM is discarded before returning.
func Load(dir string) (*types.GameBlueprint, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	bp, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}
	if err := validate(bp); err != nil {
		return nil, err
	}
	return bp, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries:
// no io, os, package, or debug, so a game script cannot touch the
// filesystem or spawn processes.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions left over from the
// base library, and disables math.randomseed so the engine's own RNG
// (§5) is the only source of nondeterminism, never content scripts.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// sortedLuaFiles orders a game's content files with game.lua first (so
// Game{} always runs before anything referencing its fields), then the
// rest alphabetically for determinism.
func sortedLuaFiles(files []string) []string {
	out := append([]string(nil), files...)
	sort.Slice(out, func(i, j int) bool {
		if out[i] == "game.lua" {
			return out[j] != "game.lua"
		}
		if out[j] == "game.lua" {
			return false
		}
		return out[i] < out[j]
	})
	return out
}

package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerLootHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Tower "Class" { ... } — curried: Tower("Class") returns a function
	// that takes a table.
	L.SetGlobal("Tower", L.NewFunction(func(L *lua.LState) int {
		class := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.towers = append(coll.towers, rawTower{class: class, table: tbl})
			return 0
		}))
		return 1
	}))

	// Item "Name" { ... } — curried.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Monster "Type" { ... } — curried.
	L.SetGlobal("Monster", L.NewFunction(func(L *lua.LState) int {
		mtype := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.monsters = append(coll.monsters, rawMonster{mtype: mtype, table: tbl})
			return 0
		}))
		return 1
	}))

	// Boss "Type" { ... } — curried.
	L.SetGlobal("Boss", L.NewFunction(func(L *lua.LState) int {
		btype := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.bosses = append(coll.bosses, rawBoss{btype: btype, table: tbl})
			return 0
		}))
		return 1
	}))
}

func registerLootHelpers(L *lua.LState) {
	// Drop("Resource", { chance = 0.5, min = 1, max = 3, ... })
	// Returns a loot entry table for use inside a loot = { ... } list.
	L.SetGlobal("Drop", L.NewFunction(func(L *lua.LState) int {
		resource := L.CheckString(1)
		opts := L.CheckTable(2)
		tbl := L.NewTable()
		tbl.RawSetString("resource", lua.LString(resource))
		opts.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				tbl.RawSetString(string(ks), v)
			}
		})
		L.Push(tbl)
		return 1
	}))
}

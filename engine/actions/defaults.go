package actions

import "github.com/nathoo/ifcore/types"

// registerDefaults installs the built-in handler for every verb
// described in §4.5's default-handler list. A blueprint can still
// install a per-item/per-location hook that pre-empts any of these; it
// can also replace a default outright by registering its own Handler
// under the same VerbID before the engine starts (see Registry.Register).
func registerDefaults(r *Registry) {
	r.Register(types.NewVerbID("look"), lookHandler())
	r.Register(types.NewVerbID("examine"), examineHandler())
	r.Register(types.NewVerbID("inventory"), inventoryHandler())
	r.Register(types.NewVerbID("score"), scoreHandler())
	r.Register(types.NewVerbID("wait"), waitHandler())
	r.Register(types.NewVerbID("think_about"), thinkAboutHandler())

	r.Register(types.NewVerbID("go"), goHandler())
	r.Register(types.NewVerbID("enter"), enterHandler())
	r.Register(types.NewVerbID("exit"), exitHandler())

	r.Register(types.NewVerbID("take"), takeHandler())
	r.Register(types.NewVerbID("drop"), dropHandler())
	r.Register(types.NewVerbID("put_in"), putHandler())
	r.Register(types.NewVerbID("put_on"), putHandler())
	r.Register(types.NewVerbID("wear"), wearHandler())
	r.Register(types.NewVerbID("remove"), removeWornHandler())

	r.Register(types.NewVerbID("open"), openHandler())
	r.Register(types.NewVerbID("close"), closeHandler())
	r.Register(types.NewVerbID("lock"), lockHandler())
	r.Register(types.NewVerbID("unlock"), unlockHandler())
	r.Register(types.NewVerbID("turn_on"), turnOnHandler())
	r.Register(types.NewVerbID("turn_off"), turnOffHandler())

	r.Register(types.NewVerbID("read"), readHandler())
	r.Register(types.NewVerbID("smell"), smellHandler())
	r.Register(types.NewVerbID("listen"), listenHandler())
	r.Register(types.NewVerbID("touch"), touchHandler())
	r.Register(types.NewVerbID("eat"), eatHandler())
	r.Register(types.NewVerbID("drink"), drinkHandler())

	r.Register(types.NewVerbID("verbose"), displayModeHandler("verbose"))
	r.Register(types.NewVerbID("brief"), displayModeHandler("brief"))
	r.Register(types.NewVerbID("superbrief"), displayModeHandler("superbrief"))
	r.Register(types.NewVerbID("help"), helpHandler())
	r.Register(types.NewVerbID("quit"), quitHandler())
}

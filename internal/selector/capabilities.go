package selector

// Capability advertisement. Everything this target claims
// to the surrounding pipeline lives here as pure, side-effect-free
// queries over the Capabilities value New already computed — the
// environment reads themselves stay in state.go's loadCapabilities,
// since they run exactly once at construction and nowhere else needs to
// know they came from the environment at all.

// SupportsWriteBarriers reports whether store lowering should route
// tagged-pointer writes through the write-barrier path.
func (c Capabilities) SupportsWriteBarriers() bool { return c.writeBarriersEnabled }

// SupportsSwitchJumpTable reports whether Switch lowering is allowed to
// consider a jump table at all; the cost model in rules_switch.go still
// decides case by case whether one actually pays off.
func (c Capabilities) SupportsSwitchJumpTable() bool { return c.switchJumpTableEnabled }

// RequiresAlignedAccess reports whether the target advertises that it
// lacks full unaligned access. It is advertised to the pipeline only;
// loadOpcode/storeOpcode do not consult it.
func (c Capabilities) RequiresAlignedAccess() bool { return !c.FullUnalignedAccess }

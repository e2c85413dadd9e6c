package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
)

func TestNewRejectsNon32Bit(t *testing.T) {
	g := ir.NewBuilder(64)
	_, err := New(g, frame.NewBump())
	require.Error(t, err)
}

func TestNewAccepts32Bit(t *testing.T) {
	g := ir.NewBuilder(32)
	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	require.NotNil(t, sel)
}

func TestLoadCapabilitiesDefaults(t *testing.T) {
	g := ir.NewBuilder(32)
	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)

	caps := sel.Capabilities()
	require.True(t, caps.SupportsWriteBarriers())
	require.True(t, caps.SupportsSwitchJumpTable())
	require.False(t, caps.RequiresAlignedAccess())
}

package configstring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenarioS1MinimalConfigString(t *testing.T) {
	cs, warnings := Parse("Chess;;-;O7,Opponent,AI,Human;R0,Reset;V,v221106")
	require.Empty(t, warnings)
	require.Equal(t, "Chess", cs.Name)
	require.Equal(t, "", cs.Settings.Raw)
	require.Len(t, cs.Menu, 4)

	require.Equal(t, Empty{}, cs.Menu[0])
	require.Equal(t, Option{Lo: 7, Hi: 8, Label: "Opponent", Choices: []string{"AI", "Human"}}, cs.Menu[1])
	require.Equal(t, Trigger{ClosesOSD: true, BitIndex: 0, Label: "Reset"}, cs.Menu[2])
	require.Equal(t, Version{Text: "v221106"}, cs.Menu[3])

	mask := Mask(cs)
	require.True(t, mask.Get(0))
	require.True(t, mask.Get(7))
	require.False(t, mask.Get(1))
}

func TestScenarioS2RangeStraddling32(t *testing.T) {
	cs, warnings := Parse("X;;OFG,Test,a,b,c,d")
	require.Empty(t, warnings)
	require.Len(t, cs.Menu, 1)
	require.Equal(t, Option{Lo: 15, Hi: 17, Label: "Test", Choices: []string{"a", "b", "c", "d"}}, cs.Menu[0])

	mask := Mask(cs)
	require.True(t, mask.Get(15))
	require.True(t, mask.Get(16))
	require.False(t, mask.Get(17))
}

func TestScenarioS3HighHalfOption(t *testing.T) {
	cs, warnings := Parse("X;;oI,Autosave,On,Off")
	require.Empty(t, warnings)
	require.Len(t, cs.Menu, 1)
	require.Equal(t, Option{Lo: 50, Hi: 51, Label: "Autosave", Choices: []string{"On", "Off"}}, cs.Menu[0])

	mask := Mask(cs)
	require.True(t, mask.Get(50))
}

func TestProperty6RepresentativeLines(t *testing.T) {
	cs, warnings := Parse("Core;set;O0,Mode,A,B;o0,Hi,A,B;R1,Reset;r0,HardReset;FC0,rom,Load ROM;S0,img,Mount Image;P1,Page One;J1,A,B,Start;V,v1.0.0")
	require.Empty(t, warnings)
	require.Equal(t, "Core", cs.Name)
	require.Equal(t, "set", cs.Settings.Raw)
	require.Len(t, cs.Menu, 9)

	opt, ok := cs.Menu[0].(Option)
	require.True(t, ok)
	require.Equal(t, 0, opt.Lo)
	require.Equal(t, 1, opt.Hi)

	hiOpt, ok := cs.Menu[1].(Option)
	require.True(t, ok)
	require.Equal(t, 32, hiOpt.Lo)
	require.Equal(t, 33, hiOpt.Hi)

	trig, ok := cs.Menu[2].(Trigger)
	require.True(t, ok)
	require.True(t, trig.ClosesOSD)
	require.Equal(t, 1, trig.BitIndex)

	rtrig, ok := cs.Menu[3].(Trigger)
	require.True(t, ok)
	require.True(t, rtrig.ClosesOSD)
	require.Equal(t, 32, rtrig.BitIndex)

	lf, ok := cs.Menu[4].(LoadFile)
	require.True(t, ok)
	require.True(t, lf.Remember)
	require.Equal(t, []string{"rom"}, lf.Extensions)
	require.Equal(t, "Load ROM", lf.Label)

	sd, ok := cs.Menu[5].(MountSdCard)
	require.True(t, ok)
	require.Equal(t, []string{"img"}, sd.Extensions)

	page, ok := cs.Menu[6].(Page)
	require.True(t, ok)
	require.Equal(t, 1, page.Index)
	require.Equal(t, "Page One", page.Label)

	jb, ok := cs.Menu[7].(JoystickButtons)
	require.True(t, ok)
	require.False(t, jb.LocksKeyboard)
	require.Equal(t, []string{"A", "B", "Start"}, jb.Names)

	ver, ok := cs.Menu[8].(Version)
	require.True(t, ok)
	require.Equal(t, "v1.0.0", ver.Text)
}

func TestUnrecognizedLineIsSkippedNotFatal(t *testing.T) {
	cs, warnings := Parse("Core;;O0,Mode,A,B;ZZZ garbage;V,v1")
	require.Len(t, warnings, 1)
	require.Len(t, cs.Menu, 2)
}

func TestValidateFlagsOverlapAndReservedBit(t *testing.T) {
	cs, _ := Parse("Core;;O0,A,x,y;R0,Reset")
	warnings := Validate(cs)
	require.NotEmpty(t, warnings)
}

package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishSlot(t *testing.T) {
	require.Equal(t, 1, publishSlot(0))
	require.Equal(t, 2, publishSlot(1))
	require.Equal(t, 0, publishSlot(2))
	require.Equal(t, 1, publishSlot(3))
}

func TestTargetFrameUIDWarmUp(t *testing.T) {
	// Fewer frames published than slots: always just last+1, no
	// skip-ahead math applies yet.
	require.Equal(t, uint64(1), targetFrameUID(0, 0))
	require.Equal(t, uint64(1), targetFrameUID(0, 1))
	require.Equal(t, uint64(2), targetFrameUID(1, 1))
}

func TestTargetFrameUIDSteadyState(t *testing.T) {
	// Once the ring has wrapped (newest >= SlotCount == 3), a consumer
	// exactly caught up just wants the next frame.
	require.Equal(t, uint64(4), targetFrameUID(3, 3))

	// A consumer more than SlotCount behind must skip ahead to the
	// oldest frame still actually held, not replay lost frames.
	require.Equal(t, uint64(97), targetFrameUID(0, 99))
	require.Equal(t, uint64(97), targetFrameUID(95, 99))
	require.Equal(t, uint64(99), targetFrameUID(98, 99))
}

func TestSlotForUID(t *testing.T) {
	require.Equal(t, 0, slotForUID(0))
	require.Equal(t, 1, slotForUID(1))
	require.Equal(t, 2, slotForUID(2))
	require.Equal(t, 0, slotForUID(3))
	require.Equal(t, 1, slotForUID(97))
}

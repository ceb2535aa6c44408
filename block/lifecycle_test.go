package block

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"go.shm.dev/framering/ring"
	"go.shm.dev/framering/ringerr"
)

func uniqueName(t *testing.T) string {
	return fmt.Sprintf("test-%d-%d", os.Getpid(), time.Now().UnixNano())
}

func TestCreateRefusesDuplicateName(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("/dev/shm not available in this environment")
	}
	name := uniqueName(t)

	h, err := Create(name, 4, 4, 1)
	require.NoError(t, err)
	defer Destroy(h)

	_, err = Create(name, 4, 4, 1)
	require.ErrorIs(t, err, ringerr.ErrAlreadyExists)
}

func TestCreateRejectsPathSeparator(t *testing.T) {
	_, err := Create("not/allowed", 1, 1, 1)
	require.ErrorIs(t, err, ringerr.ErrInvalidName)
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("/dev/shm not available in this environment")
	}
	_, err := Open(uniqueName(t))
	require.ErrorIs(t, err, ringerr.ErrNotFound)
}

func TestOwnerCloseRefused(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("/dev/shm not available in this environment")
	}
	name := uniqueName(t)

	h, err := Create(name, 2, 2, 1)
	require.NoError(t, err)
	defer Destroy(h)

	require.ErrorIs(t, Close(h), ringerr.ErrOwnerMustDestroy)
}

func TestPublishConsumeRoundTrip(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("/dev/shm not available in this environment")
	}
	name := uniqueName(t)

	owner, err := Create(name, 2, 2, 1)
	require.NoError(t, err)
	defer Destroy(owner)

	reader, err := Open(name)
	require.NoError(t, err)
	defer Close(reader)

	require.True(t, IsAlive(reader))

	data := []byte{1, 2, 3, 4}
	require.NoError(t, ring.Publish(owner, 2, 2, 1, time.Now(), data))

	f := ring.NewFrame()
	require.NoError(t, ring.Consume(reader, f, false))
	if diff := cmp.Diff(data, f.Data); diff != "" {
		t.Fatalf("consumed frame data mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, uint64(1), f.FrameUID)

	// No second frame yet: non-blocking consume must report that
	// cleanly rather than return the same frame again.
	require.ErrorIs(t, ring.Consume(reader, f, false), ringerr.ErrNoNewFrame)
}

func TestDestroyWakesBlockedConsumer(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("/dev/shm not available in this environment")
	}
	name := uniqueName(t)

	owner, err := Create(name, 2, 2, 1)
	require.NoError(t, err)

	reader, err := Open(name)
	require.NoError(t, err)

	result := make(chan error, 1)
	go func() {
		f := ring.NewFrame()
		result <- ring.Consume(reader, f, true)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, Destroy(owner))

	select {
	case err := <-result:
		require.ErrorIs(t, err, ringerr.ErrNotActive)
	case <-time.After(time.Second):
		t.Fatal("blocked consumer was never woken by Destroy")
	}

	// reader was opened in the owner's own process, so Close still
	// treats it as the owner's handle and refuses it.
	require.ErrorIs(t, Close(reader), ringerr.ErrOwnerMustDestroy)
}

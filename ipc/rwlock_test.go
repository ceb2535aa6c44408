package ipc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRWLockTryRLockExcludesWriter(t *testing.T) {
	var l RWLock

	require.True(t, l.TryRLock())
	require.True(t, l.TryRLock()) // multiple readers allowed
	l.RUnlock()
	l.RUnlock()

	l.Lock()
	require.False(t, l.TryRLock())
	l.Unlock()

	require.True(t, l.TryRLock())
	l.RUnlock()
}

func TestRWLockWriterExcludesWriter(t *testing.T) {
	var l RWLock
	l.Lock()

	acquired := make(chan struct{})
	go func() {
		l.Lock()
		close(acquired)
		l.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired lock while first still held it")
	case <-time.After(50 * time.Millisecond):
	}

	l.Unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second writer never acquired lock")
	}
}

func TestRWLockWriterWokenByReaderUnlock(t *testing.T) {
	var l RWLock
	require.True(t, l.TryRLock())

	acquired := make(chan struct{})
	go func() {
		l.Lock()
		close(acquired)
		l.Unlock()
	}()

	// Give the writer a chance to observe the held read lock and park
	// in futexWait before the reader releases it.
	time.Sleep(50 * time.Millisecond)
	l.RUnlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("writer parked on a held read lock was never woken by RUnlock")
	}
}

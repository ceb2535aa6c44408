package block

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.shm.dev/framering/ring"
)

// TestHelperProcess is not a real test: it is the body that runs when
// this test binary is re-invoked as a subprocess (see helperCommand
// below), the same os/exec-style pattern the standard library's own
// exec tests use instead of shipping a separate helper binary. Under a
// normal `go test` run FRAMERING_HELPER_PROCESS is unset, so this
// returns immediately and contributes nothing.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("FRAMERING_HELPER_PROCESS") != "1" {
		return
	}
	name := os.Getenv("FRAMERING_HELPER_NAME")
	switch os.Getenv("FRAMERING_HELPER_ROLE") {
	case "producer":
		runProducerHelper(name)
	case "consumer":
		runConsumerHelper(name)
	default:
		os.Exit(2)
	}
	os.Exit(0)
}

func runProducerHelper(name string) {
	h, err := Create(name, 2, 2, 1)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create:", err)
		os.Exit(1)
	}
	defer Destroy(h)

	for i := 0; i < 5; i++ {
		data := []byte{byte(i), byte(i), byte(i), byte(i)}
		if err := ring.Publish(h, 2, 2, 1, time.Now(), data); err != nil {
			fmt.Fprintln(os.Stderr, "publish:", err)
			os.Exit(1)
		}
		time.Sleep(20 * time.Millisecond)
	}

	// Hold the region open long enough for the consumer subprocess to
	// catch up before Destroy runs via the defer above.
	time.Sleep(200 * time.Millisecond)
}

func runConsumerHelper(name string) {
	var h *ring.Handle
	var err error
	for i := 0; i < 100; i++ {
		h, err = Open(name)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer Close(h)

	f := ring.NewFrame()
	for i := 0; i < 5; i++ {
		if err := ring.Consume(h, f, true); err != nil {
			fmt.Fprintln(os.Stderr, "consume:", err)
			os.Exit(1)
		}
		fmt.Printf("uid=%d bytes=%d\n", f.FrameUID, len(f.Data))
	}
}

func helperCommand(t *testing.T, role, name string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(),
		"FRAMERING_HELPER_PROCESS=1",
		"FRAMERING_HELPER_ROLE="+role,
		"FRAMERING_HELPER_NAME="+name,
	)
	return cmd
}

func TestCrossProcessPublishConsume(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("/dev/shm not available in this environment")
	}
	if os.Getenv("FRAMERING_HELPER_PROCESS") == "1" {
		t.Skip("running inside a re-exec'd helper process")
	}

	name := uniqueName(t)

	producer := helperCommand(t, "producer", name)
	require.NoError(t, producer.Start())
	defer producer.Wait()

	consumer := helperCommand(t, "consumer", name)
	out, err := consumer.StdoutPipe()
	require.NoError(t, err)
	consumer.Stderr = os.Stderr
	require.NoError(t, consumer.Start())

	scanner := bufio.NewScanner(out)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, consumer.Wait())

	require.Len(t, lines, 5)
	for i, line := range lines {
		require.True(t, strings.HasPrefix(line, fmt.Sprintf("uid=%d ", i+1)), "line %d: %q", i, line)
	}
}

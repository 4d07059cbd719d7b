package provisioning

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureObserver returns a ConsoleObserver whose output is appended to lines.
func captureObserver(lines *[]string) *ConsoleObserver {
	return NewLogrObserver(funcr.New(func(_, args string) {
		*lines = append(*lines, args)
	}, funcr.Options{}))
}

func TestConsoleObserver_Printf(t *testing.T) {
	var lines []string
	observer := captureObserver(&lines)

	observer.Printf("test message: %s", "value")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg"="test message: value"`)
}

func TestConsoleObserver_Event(t *testing.T) {
	var lines []string
	observer := captureObserver(&lines)

	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    "caches",
		Resource: "rc1abcd1234",
		Message:  "cache created",
		Fields: map[string]string{
			"type": "cache",
			"id":   "/subscriptions/x",
		},
	})

	require.Len(t, lines, 1)
	line := lines[0]
	assert.Contains(t, line, `"event"="resource.created"`)
	assert.Contains(t, line, `"phase"="caches"`)
	assert.Contains(t, line, `"resource"="rc1abcd1234"`)
	// fields are sorted by key
	assert.Less(t, strings.Index(line, `"id"=`), strings.Index(line, `"type"=`))
}

func TestConsoleObserver_Progress(t *testing.T) {
	var lines []string
	observer := captureObserver(&lines)

	observer.Progress("caches", 1, 3)
	observer.Progress("caches", 0, 0)

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"percent"=33`)
	assert.NotContains(t, lines[1], "percent")
}

func TestConsoleObserver_WithFields(t *testing.T) {
	var lines []string
	observer := captureObserver(&lines)

	contextual := observer.WithFields(map[string]string{"run": "RedisRGabcd1234"})
	contextual.Printf("hello")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"run"="RedisRGabcd1234"`)
}

func TestNewConsoleObserver_DoesNotPanic(_ *testing.T) {
	observer := NewConsoleObserver()
	observer.Printf("test message: %s", "value")
	LogPhaseStart(observer, "test")
}

func TestRecordingObserver_Events(t *testing.T) {
	observer := NewRecordingObserver()

	LogPhaseStart(observer, "test-phase")
	LogResourceCreating(observer, "caches", "cache", "rc1")
	LogResourceCreated(observer, "caches", "cache", "rc1", "12345")
	LogPhaseComplete(observer, "test-phase", 2*time.Second)

	events := observer.Events()
	require.Len(t, events, 4)

	assert.Equal(t, EventPhaseStarted, events[0].Type)
	assert.Equal(t, "test-phase", events[0].Phase)
	assert.Equal(t, EventResourceCreating, events[1].Type)
	assert.Equal(t, "rc1", events[1].Resource)
	assert.Equal(t, EventResourceCreated, events[2].Type)
	assert.Equal(t, "12345", events[2].Fields["id"])
	assert.Equal(t, EventPhaseCompleted, events[3].Type)
}

func TestRecordingObserver_WithFieldsSharesStorage(t *testing.T) {
	observer := NewRecordingObserver()
	child := observer.WithFields(map[string]string{"cache": "rc2"})

	LogResourceDeleting(child, "maintenance", "cache", "rc2")
	child.Printf("message %d", 1)

	events := observer.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "rc2", events[0].Fields["cache"])
	assert.Equal(t, "cache", events[0].Fields["type"])
	assert.Equal(t, []string{"message 1"}, observer.Messages())
}

func TestRecordingObserver_Concurrent(t *testing.T) {
	observer := NewRecordingObserver()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			LogResourceCreating(observer, "caches", "cache", "rc")
		}()
	}
	wg.Wait()

	assert.Len(t, observer.EventsOf(EventResourceCreating), 10)
}

func TestLogHelpers(t *testing.T) {
	observer := NewRecordingObserver()

	LogPhaseStart(observer, "phase1")
	LogPhaseComplete(observer, "phase1", time.Second)
	LogPhaseFailed(observer, "phase2", assert.AnError)
	LogResourceCreating(observer, "caches", "cache", "rc1")
	LogResourceCreated(observer, "caches", "cache", "rc1", "id-123")
	LogResourceUpdated(observer, "maintenance", "cache", "rc2", "patched")
	LogResourceFailed(observer, "cleanup", "resource group", "rg", assert.AnError)
	LogResourceDeleting(observer, "cleanup", "resource group", "rg")
	LogResourceDeleted(observer, "cleanup", "resource group", "rg")

	assert.Len(t, observer.Events(), 9)
	assert.Contains(t, observer.EventsOf(EventResourceFailed)[0].Message, assert.AnError.Error())
}

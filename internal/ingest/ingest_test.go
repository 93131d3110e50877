package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/graphitepush/pkg/log"
)

var fixedNow = func() time.Time { return time.Unix(1700000000, 0) }

type recordingSink struct {
	mu      sync.Mutex
	samples []Sample
	pushes  int
}

func (s *recordingSink) Add(ctx context.Context, timestamp int64, value float64, segments ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, Sample{Segments: segments, Timestamp: timestamp, Value: value})
}

func (s *recordingSink) Push(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes++
}

func (s *recordingSink) snapshot() ([]Sample, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sample(nil), s.samples...), s.pushes
}

func TestNewParser(t *testing.T) {
	for _, f := range []string{"", FormatPlaintext, FormatInflux} {
		_, err := NewParser(f, nil)
		assert.NoError(t, err, "format %q", f)
	}
	_, err := NewParser("statsd", nil)
	assert.Error(t, err)
}

func TestPlaintextParser(t *testing.T) {
	p := &PlaintextParser{now: fixedNow}

	tests := []struct {
		name    string
		line    string
		want    []Sample
		wantErr bool
	}{
		{"full line", "celery.tasks.ok 3 1467844481", []Sample{{[]string{"celery", "tasks", "ok"}, 1467844481, 3}}, false},
		{"no timestamp", "a.b 1.5", []Sample{{[]string{"a", "b"}, 1700000000, 1.5}}, false},
		{"float timestamp", "a 1 1467844481.9", []Sample{{[]string{"a"}, 1467844481, 1}}, false},
		{"surrounding space", "  a 2 10  ", []Sample{{[]string{"a"}, 10, 2}}, false},
		{"blank", "   ", nil, false},
		{"comment", "# header", nil, false},
		{"bad value", "a x 10", nil, true},
		{"bad timestamp", "a 1 soon", nil, true},
		{"NaN timestamp", "a 1 NaN", nil, true},
		{"infinite timestamp", "a 1 -Inf", nil, true},
		{"timestamp overflow", "a 1 1e30", nil, true},
		{"NaN value", "a NaN 10", nil, true},
		{"infinite value", "a +Inf 10", nil, true},
		{"too few fields", "a", nil, true},
		{"too many fields", "a 1 2 3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse([]byte(tt.line))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInfluxParser(t *testing.T) {
	p := NewInfluxParser(fixedNow)

	got, err := p.Parse([]byte("tasks,queue=default ok=3i,failed=1i,rate=0.5,up=true,note=\"x\" 1467844481000000000\n"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []Sample{
		{[]string{"tasks", "ok"}, 1467844481, 3},
		{[]string{"tasks", "failed"}, 1467844481, 1},
		{[]string{"tasks", "rate"}, 1467844481, 0.5},
		{[]string{"tasks", "up"}, 1467844481, 1},
	}, got)
}

func TestInfluxParser_DefaultTime(t *testing.T) {
	p := NewInfluxParser(fixedNow)

	got, err := p.Parse([]byte("cpu value=1\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1700000000), got[0].Timestamp)
}

func TestInfluxParser_Invalid(t *testing.T) {
	_, err := NewInfluxParser(fixedNow).Parse([]byte("cpu value=\n"))
	assert.Error(t, err)
}

func TestForward(t *testing.T) {
	sink := &recordingSink{}
	input := strings.Join([]string{
		"a.b 1 10",
		"garbage",
		"",
		"a.c 2 11",
	}, "\n")

	n, err := Forward(context.Background(), strings.NewReader(input), &PlaintextParser{now: fixedNow}, sink, log.NewNoopLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	samples, pushes := sink.snapshot()
	assert.Equal(t, []Sample{
		{[]string{"a", "b"}, 10, 1},
		{[]string{"a", "c"}, 11, 2},
	}, samples)
	assert.Zero(t, pushes, "Forward leaves pushing to the caller")
}

func TestForward_SkipsOversizedLine(t *testing.T) {
	sink := &recordingSink{}
	input := "a.b 1 10\n" + strings.Repeat("x", MaxLineSize+10) + "\na.c 2 11\n"

	n, err := Forward(context.Background(), strings.NewReader(input), &PlaintextParser{now: fixedNow}, sink, log.NewNoopLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	samples, _ := sink.snapshot()
	assert.Equal(t, []Sample{
		{[]string{"a", "b"}, 10, 1},
		{[]string{"a", "c"}, 11, 2},
	}, samples)
}

func TestForward_OversizedLastLine(t *testing.T) {
	sink := &recordingSink{}
	input := "a.b 1 10\n" + strings.Repeat("x", MaxLineSize+10)

	n, err := Forward(context.Background(), strings.NewReader(input), &PlaintextParser{now: fixedNow}, sink, log.NewNoopLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestForward_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Forward(ctx, strings.NewReader("a 1 1\n"), &PlaintextParser{now: fixedNow}, &recordingSink{}, log.NewNoopLogger())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(line)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestFollow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.log")
	appendLine(t, path, "old.sample 1 1\n")

	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, TailConfig{}, &PlaintextParser{now: fixedNow}, sink, log.NewNoopLogger())
	}()

	// Give the watcher time to register before appending.
	time.Sleep(100 * time.Millisecond)
	appendLine(t, path, "new.sample 2 2\npartial.sam")

	assert.Eventually(t, func() bool {
		samples, _ := sink.snapshot()
		return len(samples) == 1
	}, 2*time.Second, 10*time.Millisecond)

	appendLine(t, path, "ple 3 3\n")
	assert.Eventually(t, func() bool {
		samples, _ := sink.snapshot()
		return len(samples) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	samples, pushes := sink.snapshot()
	assert.Equal(t, []Sample{
		{[]string{"new", "sample"}, 2, 2},
		{[]string{"partial", "sample"}, 3, 3},
	}, samples)
	assert.Equal(t, 1, pushes, "final push on shutdown")
}

func TestFollow_FromStartAndInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.log")
	appendLine(t, path, "old.sample 1 1\n")

	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, TailConfig{FromStart: true, FlushInterval: 20 * time.Millisecond}, &PlaintextParser{now: fixedNow}, sink, log.NewNoopLogger())
	}()

	assert.Eventually(t, func() bool {
		samples, pushes := sink.snapshot()
		return len(samples) == 1 && pushes >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

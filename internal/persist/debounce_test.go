package persist

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubilitics/kubeplay/internal/cluster"
	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/state"
)

type countingStorage struct {
	Storage
	saves atomic.Int64
}

func (c *countingStorage) Save(key string, value any) error {
	c.saves.Add(1)
	return c.Storage.Save(key, value)
}

type failingStorage struct{ Storage }

func (failingStorage) Save(string, any) error {
	return errors.New("disk full")
}

func metav1ObjectMeta(name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{Name: name, Namespace: "default"}
}

func emitPod(bus *events.Bus, name string) {
	res := cluster.Resource{
		APIVersion: "v1",
		Kind:       cluster.Pod,
		Metadata:   metav1ObjectMeta(name),
	}
	bus.Emit(events.New(events.Created, res, nil, "test", time.Now()))
}

func TestBurstCoalescesIntoOneSave(t *testing.T) {
	storage := &countingStorage{Storage: NewMemoryStorage()}
	bus := events.NewBus(10)
	store := state.NewStore()
	store.Attach(bus)

	saver := NewSaver(storage, "cluster", 20*time.Millisecond, store.Snapshot, nil)
	saver.Attach(bus)
	defer saver.Stop()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		emitPod(bus, name)
	}

	require.Eventually(t, func() bool {
		return storage.saves.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// No further mutations: the count must stay at one.
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, storage.saves.Load())

	var loaded state.Data
	require.NoError(t, storage.Load("cluster", &loaded))
	require.Len(t, loaded.Pods, 5, "saved snapshot must reflect the whole burst")
}

func TestFlushSavesPendingImmediately(t *testing.T) {
	storage := &countingStorage{Storage: NewMemoryStorage()}
	bus := events.NewBus(10)
	store := state.NewStore()
	store.Attach(bus)

	saver := NewSaver(storage, "cluster", time.Hour, store.Snapshot, nil)
	saver.Attach(bus)
	defer saver.Stop()

	emitPod(bus, "a")
	require.NoError(t, saver.Flush())
	require.EqualValues(t, 1, storage.saves.Load())

	var loaded state.Data
	require.NoError(t, storage.Load("cluster", &loaded))
	require.Len(t, loaded.Pods, 1)
}

func TestFlushWithoutPendingIsNoop(t *testing.T) {
	storage := &countingStorage{Storage: NewMemoryStorage()}
	saver := NewSaver(storage, "cluster", time.Hour, state.Empty, nil)

	require.NoError(t, saver.Flush())
	require.EqualValues(t, 0, storage.saves.Load())
}

func TestStopCancelsPendingSave(t *testing.T) {
	storage := &countingStorage{Storage: NewMemoryStorage()}
	bus := events.NewBus(10)
	store := state.NewStore()
	store.Attach(bus)

	saver := NewSaver(storage, "cluster", 20*time.Millisecond, store.Snapshot, nil)
	saver.Attach(bus)

	emitPod(bus, "a")
	saver.Stop()

	time.Sleep(60 * time.Millisecond)
	require.EqualValues(t, 0, storage.saves.Load())
}

func TestEveryMutationVerbSchedulesSave(t *testing.T) {
	for verb := range persistVerbs {
		storage := &countingStorage{Storage: NewMemoryStorage()}
		bus := events.NewBus(10)
		saver := NewSaver(storage, "cluster", 5*time.Millisecond, state.Empty, nil)
		saver.Attach(bus)

		res := cluster.Resource{Kind: cluster.Pod, Metadata: metav1ObjectMeta("x")}
		bus.Emit(events.New(verb, res, nil, "test", time.Now()))

		require.Eventually(t, func() bool {
			return storage.saves.Load() == 1
		}, time.Second, time.Millisecond, "verb %s must trigger a save", verb)
		saver.Stop()
	}
}

func TestSaveFailureReported(t *testing.T) {
	var reported atomic.Int64
	bus := events.NewBus(10)
	saver := NewSaver(failingStorage{NewMemoryStorage()}, "cluster", time.Hour, state.Empty, func(err error) {
		require.ErrorContains(t, err, "disk full")
		reported.Add(1)
	})
	saver.Attach(bus)

	emitPod(bus, "a")
	require.Error(t, saver.Flush())
	require.EqualValues(t, 1, reported.Load())
}
